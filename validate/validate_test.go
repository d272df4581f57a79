package validate

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

type signup struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,max=8"`
}

func TestStruct(t *testing.T) {
	Convey("Given a struct with violations", t, func() {
		err := Struct(signup{Email: "nope", Name: "a very long name"})

		Convey("Then every violation is reported by its json name", func() {
			var violations Errors
			So(errors.As(err, &violations), ShouldBeTrue)
			So(violations, ShouldHaveLength, 2)
			So(violations[0].Field, ShouldEqual, "email")
			So(violations[0].Code, ShouldEqual, "EMAIL")
			So(err.Error(), ShouldEqual, "email must be a valid email address; name must not exceed 8")
		})
	})

	Convey("Given a valid struct", t, func() {
		So(Struct(signup{Email: "ada@example.com", Name: "Ada"}), ShouldBeNil)
	})
}

func TestVar(t *testing.T) {
	Convey("Single values are checked against a tag", t, func() {
		So(Var("email", "ada@example.com", "email"), ShouldBeNil)

		err := Var("level", "expert", "oneof=beginner advanced")
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldEqual, "level must be one of: beginner advanced")
	})
}
