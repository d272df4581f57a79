package auth

import (
	"errors"
	"testing"

	"github.com/coursecast/coursecast/catalog"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

const password = "Secr3t!"

func TestPasswordProblems(t *testing.T) {
	Convey("Passwords must be long and mixed", t, func() {
		So(PasswordProblems(password), ShouldBeEmpty)
		So(PasswordProblems("abc"), ShouldHaveLength, 3)
		So(PasswordProblems("abcdefG"), ShouldResemble, []string{
			"Password must contain at least one special character (!@#$%^&*)",
		})
	})
}

func TestAccounts(t *testing.T) {
	Convey("Given an empty keyring", t, func() {
		keyring.MockInit()

		Convey("When an account is registered", func() {
			user, err := Register(" Ada@Example.com ", "Ada", password)

			Convey("Then it is signed in", func() {
				So(err, ShouldBeNil)
				So(user.Email, ShouldEqual, "ada@example.com")
				So(SignedIn(), ShouldBeTrue)
				So(Current().MustGet().Name, ShouldEqual, "Ada")
			})

			Convey("Then the email cannot be registered again", func() {
				_, err := Register("ada@example.com", "Other", password)
				So(errors.Is(err, ErrAccountExists), ShouldBeTrue)
			})

			Convey("Then signing out notifies subscribers once", func() {
				calls := 0
				cancel := OnSignOut(func() { calls++ })
				defer cancel()

				So(SignOut(), ShouldBeNil)
				So(errors.Is(SignOut(), ErrNotSignedIn), ShouldBeTrue)
				So(calls, ShouldEqual, 1)
				So(SignedIn(), ShouldBeFalse)
			})

			Convey("Then signing back in needs the right password", func() {
				So(SignOut(), ShouldBeNil)

				_, err := SignIn("ada@example.com", "Wrong!pass")
				So(errors.Is(err, ErrInvalidCredentials), ShouldBeTrue)

				user, err := SignIn("ADA@example.com", password)
				So(err, ShouldBeNil)
				So(user.Name, ShouldEqual, "Ada")
			})
		})

		Convey("When registration input is invalid", func() {
			_, badEmail := Register("not-an-email", "Ada", password)
			_, weak := Register("ada@example.com", "Ada", "weak")

			Convey("Then it is rejected", func() {
				So(badEmail, ShouldNotBeNil)
				So(badEmail.Error(), ShouldContainSubstring, "email")
				So(errors.Is(weak, ErrWeakPassword), ShouldBeTrue)
				So(SignedIn(), ShouldBeFalse)
			})
		})

		Convey("When signing in to an unknown account", func() {
			_, err := SignIn("nobody@example.com", password)

			Convey("Then the credentials are invalid", func() {
				So(errors.Is(err, ErrInvalidCredentials), ShouldBeTrue)
			})
		})
	})
}

func TestPurchase(t *testing.T) {
	Convey("Given the embedded catalog", t, func() {
		keyring.MockInit()
		courses := catalog.Embedded()

		Convey("When nobody is signed in", func() {
			_, err := Purchase(courses, "1")

			Convey("Then the purchase is refused", func() {
				So(errors.Is(err, ErrNotSignedIn), ShouldBeTrue)
			})
		})

		Convey("When a signed-in user buys a course", func() {
			_, err := Register("ada@example.com", "Ada", password)
			So(err, ShouldBeNil)

			msg, err := Purchase(courses, "3")

			Convey("Then it joins the library", func() {
				So(err, ShouldBeNil)
				So(msg, ShouldEqual, `Successfully purchased "TypeScript Fundamentals for JavaScript Developers"! You can now access all course content.`)
				So(Current().MustGet().Owns("3"), ShouldBeTrue)
			})

			Convey("Then buying it again is refused", func() {
				_, err := Purchase(courses, "3")
				So(errors.Is(err, ErrAlreadyOwned), ShouldBeTrue)
			})

			Convey("Then unknown courses are refused", func() {
				_, err := Purchase(courses, "404")
				So(errors.Is(err, ErrCourseNotFound), ShouldBeTrue)
			})
		})
	})
}
