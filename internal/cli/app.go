// Package cli drives the interactive menu. Every operation runs to
// completion before the next choice is read; a failing operation prints
// its message and returns to the menu.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"ecotracker/internal/model"
	"ecotracker/internal/repository"
	"ecotracker/internal/service"
	"ecotracker/internal/session"
)

// App aggregates the menu loop with services.
type App struct {
	userRepo    *repository.UserRepository
	authSvc     *service.AuthService
	activitySvc *service.ActivityService
	goalSvc     *service.GoalService
	reportSvc   *service.ReportService
	exportSvc   *service.ExportService
	emissionSvc *service.EmissionService
	sessions    *session.FileStore
	log         zerolog.Logger

	in     io.Reader
	reader *bufio.Reader
	out    io.Writer

	// currentUser is the session context: set on login, read each loop
	// iteration, dropped on logout.
	currentUser *model.User
}

type Deps struct {
	UserRepo    *repository.UserRepository
	AuthSvc     *service.AuthService
	ActivitySvc *service.ActivityService
	GoalSvc     *service.GoalService
	ReportSvc   *service.ReportService
	ExportSvc   *service.ExportService
	EmissionSvc *service.EmissionService
	Sessions    *session.FileStore
	Log         zerolog.Logger
}

func New(in io.Reader, out io.Writer, deps Deps) *App {
	return &App{
		userRepo:    deps.UserRepo,
		authSvc:     deps.AuthSvc,
		activitySvc: deps.ActivitySvc,
		goalSvc:     deps.GoalSvc,
		reportSvc:   deps.ReportSvc,
		exportSvc:   deps.ExportSvc,
		emissionSvc: deps.EmissionSvc,
		sessions:    deps.Sessions,
		log:         deps.Log,
		in:          in,
		reader:      bufio.NewReader(in),
		out:         out,
	}
}

// Run restores any persisted session, then reads menu choices until the
// user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.restoreSession(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		a.printMenu()
		choice, err := promptLine(a.reader, a.out, "Choose an option")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if a.dispatch(ctx, choice) {
			fmt.Fprintln(a.out, "Exiting EcoTracker...")
			return nil
		}
	}
}

func (a *App) printMenu() {
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "EcoTracker Menu")
	if a.currentUser != nil {
		fmt.Fprintf(a.out, "Logged in as %s\n", a.currentUser.Username)
	}
	fmt.Fprintln(a.out, " 1. Sign Up")
	fmt.Fprintln(a.out, " 2. Log In")
	fmt.Fprintln(a.out, " 3. Add Activity")
	fmt.Fprintln(a.out, " 4. List Activities")
	fmt.Fprintln(a.out, " 5. List Users")
	fmt.Fprintln(a.out, " 6. Emissions Bar Chart")
	fmt.Fprintln(a.out, " 7. Add Goal")
	fmt.Fprintln(a.out, " 8. List Goals")
	fmt.Fprintln(a.out, " 9. Delete User")
	fmt.Fprintln(a.out, "10. Delete All Activities")
	fmt.Fprintln(a.out, "11. Export Activities")
	fmt.Fprintln(a.out, "12. Log Out")
	fmt.Fprintln(a.out, " 0. Exit")
}

// dispatch runs one menu choice, reporting errors without breaking the
// loop. Returns true when the user asked to exit.
func (a *App) dispatch(ctx context.Context, choice string) bool {
	var err error
	switch choice {
	case "1":
		err = a.signUp(ctx)
	case "2":
		err = a.logIn(ctx)
	case "3":
		err = a.addActivity(ctx)
	case "4":
		err = a.listActivities(ctx)
	case "5":
		err = a.listUsers(ctx)
	case "6":
		err = a.showChart(ctx)
	case "7":
		err = a.addGoal(ctx)
	case "8":
		err = a.listGoals(ctx)
	case "9":
		err = a.deleteUser(ctx)
	case "10":
		err = a.deleteAllActivities(ctx)
	case "11":
		err = a.exportActivities(ctx)
	case "12":
		err = a.logOut()
	case "0":
		return true
	default:
		fmt.Fprintln(a.out, "Invalid choice! Please try again.")
		return false
	}

	if err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
	return false
}

func (a *App) restoreSession(ctx context.Context) {
	username, ok := a.sessions.Load()
	if !ok {
		return
	}

	user, err := a.userRepo.FindByUsername(ctx, username)
	if err != nil {
		// Stale session for a deleted user: drop it quietly.
		if clearErr := a.sessions.Clear(); clearErr != nil {
			a.log.Warn().Err(clearErr).Msg("clear stale session")
		}
		return
	}

	a.currentUser = user
	fmt.Fprintf(a.out, "Welcome back, %s!\n", user.Username)
}

func (a *App) requireLogin() (*model.User, error) {
	if a.currentUser == nil {
		return nil, fmt.Errorf("please log in first (option 2)")
	}
	return a.currentUser, nil
}

func (a *App) signUp(ctx context.Context) error {
	username, err := promptNonEmpty(a.reader, a.out, "Username")
	if err != nil {
		return err
	}
	password, err := promptPassword(a.reader, a.in, a.out, "Password")
	if err != nil {
		return err
	}
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password cannot be empty")
	}

	user, err := a.authSvc.Register(ctx, username, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "User '%s' added!\n", user.Username)
	return nil
}

func (a *App) logIn(ctx context.Context) error {
	username, err := promptNonEmpty(a.reader, a.out, "Username")
	if err != nil {
		return err
	}
	password, err := promptPassword(a.reader, a.in, a.out, "Password")
	if err != nil {
		return err
	}

	user, err := a.authSvc.Verify(ctx, username, password)
	if err != nil {
		return err
	}

	a.currentUser = user
	if err := a.sessions.Save(user.Username); err != nil {
		a.log.Warn().Err(err).Msg("persist session")
	}
	fmt.Fprintf(a.out, "Logged in as %s.\n", user.Username)
	return nil
}

func (a *App) logOut() error {
	if a.currentUser == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	a.currentUser = nil
	if err := a.sessions.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) addActivity(ctx context.Context) error {
	user, err := a.requireLogin()
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Known activity types: %s\n", strings.Join(a.emissionSvc.KnownTypes(), ", "))
	activityType, err := promptNonEmpty(a.reader, a.out, "Activity Type")
	if err != nil {
		return err
	}
	quantity, err := promptPositiveFloat(a.reader, a.out, "Quantity (km for transport, kWh for electricity)")
	if err != nil {
		return err
	}

	var manual *float64
	calculated, calcErr := a.emissionSvc.Calculate(activityType, quantity)
	switch {
	case calcErr == nil:
		fmt.Fprintf(a.out, "Auto-calculated emission: %.2f kg CO2\n", calculated)
		// Only an explicit "n" switches to manual entry; a bare Enter
		// keeps the calculated value.
		answer, err := promptLine(a.reader, a.out, "Use this value? (y/n)")
		if err != nil {
			return err
		}
		if strings.EqualFold(answer, "n") || strings.EqualFold(answer, "no") {
			value, err := promptNonNegativeFloat(a.reader, a.out, "Manual Emission (kg CO2)")
			if err != nil {
				return err
			}
			manual = &value
		}
	case errors.Is(calcErr, service.ErrUnknownActivityType):
		fmt.Fprintln(a.out, "No auto-calculation for this activity type.")
		value, err := promptNonNegativeFloat(a.reader, a.out, "Emission (kg CO2)")
		if err != nil {
			return err
		}
		manual = &value
	default:
		return calcErr
	}

	_, err = a.activitySvc.AddActivity(ctx, service.ActivityInput{
		UserID:         user.ID,
		ActivityType:   activityType,
		Quantity:       quantity,
		ManualEmission: manual,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Activity added!")
	return nil
}

func (a *App) listActivities(ctx context.Context) error {
	rows, err := a.activitySvc.ListActivities(ctx)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "No activities found!")
		return nil
	}
	renderActivities(a.out, rows)
	return nil
}

func (a *App) listUsers(ctx context.Context) error {
	users, err := a.userRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		fmt.Fprintln(a.out, "No users found!")
		return nil
	}
	renderUsers(a.out, users)
	return nil
}

func (a *App) showChart(ctx context.Context) error {
	rows, err := a.reportSvc.BuildChart(ctx)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "No activities found to display!")
		return nil
	}
	fmt.Fprintln(a.out, "Total Emissions by User")
	renderChart(a.out, rows)
	return nil
}

func (a *App) addGoal(ctx context.Context) error {
	user, err := a.requireLogin()
	if err != nil {
		return err
	}

	description, err := promptNonEmpty(a.reader, a.out, "Goal Description")
	if err != nil {
		return err
	}
	target, err := promptFloat(a.reader, a.out, "Target Emission (kg CO2)")
	if err != nil {
		return err
	}
	deadline, err := promptDate(a.reader, a.out, "Deadline")
	if err != nil {
		return err
	}

	_, err = a.goalSvc.AddGoal(ctx, service.GoalInput{
		UserID:         user.ID,
		Description:    description,
		TargetEmission: target,
		Deadline:       deadline,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Goal added!")
	return nil
}

func (a *App) listGoals(ctx context.Context) error {
	user, err := a.requireLogin()
	if err != nil {
		return err
	}

	goals, err := a.goalSvc.ListGoals(ctx, user.ID)
	if err != nil {
		return err
	}
	if len(goals) == 0 {
		fmt.Fprintln(a.out, "No goals found!")
		return nil
	}
	renderGoals(a.out, goals)
	return nil
}

func (a *App) deleteUser(ctx context.Context) error {
	if err := a.listUsers(ctx); err != nil {
		return err
	}
	id, err := promptUint(a.reader, a.out, "User ID to delete")
	if err != nil {
		return err
	}

	if err := a.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("no user found with ID %d", id)
		}
		return err
	}

	// Deleting yourself ends the session.
	if a.currentUser != nil && a.currentUser.ID == id {
		a.currentUser = nil
		if err := a.sessions.Clear(); err != nil {
			a.log.Warn().Err(err).Msg("clear session")
		}
	}

	fmt.Fprintf(a.out, "User ID %d and associated activities and goals deleted!\n", id)
	return nil
}

func (a *App) deleteAllActivities(ctx context.Context) error {
	confirmed, err := promptYesNo(a.reader, a.out, "Delete ALL activities for ALL users?")
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	deleted, err := a.activitySvc.DeleteAllActivities(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %d activities!\n", deleted)
	return nil
}

func (a *App) exportActivities(ctx context.Context) error {
	user, err := a.requireLogin()
	if err != nil {
		return err
	}

	path, err := promptNonEmpty(a.reader, a.out, "Destination file")
	if err != nil {
		return err
	}

	if err := a.exportSvc.ExportToFile(ctx, user.Username, path); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Exported activities for %s to %s.\n", user.Username, path)
	return nil
}
