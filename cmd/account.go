package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/coursecast/coursecast/auth"
	"github.com/coursecast/coursecast/catalog"
	"github.com/coursecast/coursecast/color"
	"github.com/coursecast/coursecast/icon"
	"github.com/coursecast/coursecast/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().BoolP("register", "r", false, "Create a new account instead of signing in")
	loginCmd.Flags().StringP("email", "e", "", "Account email")
}

// passwordValidator reports every unmet password rule at once.
func passwordValidator(ans any) error {
	problems := auth.PasswordProblems(ans.(string))
	if len(problems) == 0 {
		return nil
	}
	return errors.New(strings.Join(problems, "\n"))
}

// loginCmd signs in to an existing account or registers a new one.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in or create an account",
	Run: func(cmd *cobra.Command, args []string) {
		if user, ok := auth.Current().Get(); ok {
			fmt.Printf("%s already signed in as %s\n", icon.Get(icon.Success), style.Fg(color.Purple)(user.Email))
			return
		}

		register := lo.Must(cmd.Flags().GetBool("register"))
		email := lo.Must(cmd.Flags().GetString("email"))

		if email == "" {
			handleErr(survey.AskOne(&survey.Input{Message: "Email"}, &email, survey.WithValidator(survey.Required)))
		}

		var (
			user *auth.User
			err  error
		)

		if register {
			var name, password string
			handleErr(survey.AskOne(&survey.Input{Message: "Name"}, &name, survey.WithValidator(survey.Required)))
			handleErr(survey.AskOne(
				&survey.Password{Message: "Password", Help: "At least 6 characters with upper and lower case letters and a special character"},
				&password,
				survey.WithValidator(passwordValidator),
			))

			var confirm string
			handleErr(survey.AskOne(&survey.Password{Message: "Confirm password"}, &confirm))
			if confirm != password {
				handleErr(errors.New("passwords do not match"))
			}

			user, err = auth.Register(email, name, password)
		} else {
			var password string
			handleErr(survey.AskOne(&survey.Password{Message: "Password"}, &password, survey.WithValidator(survey.Required)))
			user, err = auth.SignIn(email, password)
		}

		handleErr(err)
		fmt.Printf("%s signed in as %s\n", icon.Get(icon.Success), style.Fg(color.Purple)(user.Name))
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// logoutCmd ends the session. Watch progress belongs to the session and is cleared with it.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear watch progress",
	Run: func(cmd *cobra.Command, args []string) {
		if !auth.SignedIn() {
			fmt.Println(style.Faint("not signed in"))
			return
		}

		handleErr(auth.SignOut())
		handleErr(clearProgress())

		fmt.Printf("%s signed out\n", icon.Get(icon.Success))
	},
}

func init() {
	rootCmd.AddCommand(buyCmd)
}

// buyCmd adds a course to the library of the signed-in user.
var buyCmd = &cobra.Command{
	Use:               "buy <course-id>",
	Short:             "Buy a course",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionCourseIDs,
	Run: func(cmd *cobra.Command, args []string) {
		courses, err := catalog.Load()
		handleErr(err)

		msg, err := auth.Purchase(courses, args[0])
		if errors.Is(err, auth.ErrNotSignedIn) {
			handleErr(fmt.Errorf("%w, run %s first", err, style.Fg(color.Yellow)("coursecast login")))
		}
		handleErr(err)

		fmt.Printf("%s %s\n", icon.Get(icon.Success), msg)
	},
}

func init() {
	rootCmd.AddCommand(libraryCmd)
	libraryCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	libraryCmd.SetOut(os.Stdout)
}

// libraryCmd lists the courses owned by the signed-in user.
var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "List the courses you own",
	Run: func(cmd *cobra.Command, args []string) {
		user, ok := auth.Current().Get()
		if !ok {
			handleErr(auth.ErrNotSignedIn)
		}

		courses, err := catalog.Load()
		handleErr(err)

		owned := lo.Filter(courses.Courses(), func(c *catalog.Course, _ int) bool {
			return user.Owns(c.ID)
		})

		printCourses(cmd, owned, lo.Must(cmd.Flags().GetBool("json")))
	},
}
