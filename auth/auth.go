package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/coursecast/coursecast/catalog"
	"github.com/coursecast/coursecast/log"
	"github.com/coursecast/coursecast/validate"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrNotSignedIn is returned by operations that need a signed-in user.
	ErrNotSignedIn = errors.New("user not found, please log in again")
	// ErrInvalidCredentials is returned for unknown emails and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAccountExists is returned when registering an email twice.
	ErrAccountExists = errors.New("an account with this email already exists")
	// ErrWeakPassword wraps the rules a password breaks.
	ErrWeakPassword = errors.New("password is too weak")
	// ErrAlreadyOwned is returned when purchasing an owned course.
	ErrAlreadyOwned = errors.New("you already own this course")
	// ErrCourseNotFound is returned when purchasing a course the catalog does not have.
	ErrCourseNotFound = errors.New("course not found")
)

// User is a signed-in identity.
type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email" validate:"required,email"`
	Name             string    `json:"name" validate:"required,max=64"`
	PurchasedCourses []string  `json:"purchasedCourses"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Owns reports whether the user purchased the course.
func (u *User) Owns(courseID string) bool {
	return lo.Contains(u.PurchasedCourses, courseID)
}

// Courses looks up a course by id.
type Courses interface {
	Course(id string) (*catalog.Course, error)
}

// Register creates an account and signs it in.
func Register(email, name, password string) (*User, error) {
	user := User{
		ID:        strconv.FormatInt(time.Now().UnixMilli(), 10),
		Email:     normalizeEmail(email),
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC(),
	}
	if err := validate.Struct(user); err != nil {
		return nil, err
	}
	if problems := PasswordProblems(password); len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrWeakPassword, strings.Join(problems, "; "))
	}

	existing, err := loadAccount(user.Email)
	if err != nil {
		return nil, err
	}
	if existing.IsPresent() {
		return nil, ErrAccountExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := saveAccount(&account{User: user, PasswordHash: string(hash)}); err != nil {
		return nil, fmt.Errorf("save account: %w", err)
	}
	if err := setSession(user.Email); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	log.Infof("registered %s", user.Email)
	return &user, nil
}

// SignIn checks the credentials and makes the account current.
func SignIn(email, password string) (*User, error) {
	if err := validate.Var("email", normalizeEmail(email), "required,email"); err != nil {
		return nil, err
	}

	found, err := loadAccount(email)
	if err != nil {
		return nil, err
	}
	acc, ok := found.Get()
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	if err := setSession(acc.User.Email); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	log.Infof("signed in as %s", acc.User.Email)
	return &acc.User, nil
}

// Current returns the signed-in user, if any.
func Current() mo.Option[*User] {
	email, ok := sessionEmail().Get()
	if !ok {
		return mo.None[*User]()
	}

	found, err := loadAccount(email)
	if err != nil {
		log.Warnf("load current account: %v", err)
		return mo.None[*User]()
	}

	acc, ok := found.Get()
	if !ok {
		return mo.None[*User]()
	}
	return mo.Some(&acc.User)
}

// SignedIn reports whether a user is signed in.
func SignedIn() bool {
	return Current().IsPresent()
}

var (
	subsMu  sync.Mutex
	subsID  int
	signOut = make(map[int]func())
)

// OnSignOut registers fn to run after every sign-out.
func OnSignOut(fn func()) (cancel func()) {
	subsMu.Lock()
	defer subsMu.Unlock()

	id := subsID
	subsID++
	signOut[id] = fn

	return func() {
		subsMu.Lock()
		defer subsMu.Unlock()
		delete(signOut, id)
	}
}

// SessionEmail returns the email of the signed-in account, if any.
// It reads the keyring on every call, so changes made by other processes are seen.
func SessionEmail() mo.Option[string] {
	return sessionEmail()
}

// SignOut ends the session and notifies OnSignOut subscribers once.
func SignOut() error {
	if !sessionEmail().IsPresent() {
		return ErrNotSignedIn
	}
	if err := deleteSession(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	subsMu.Lock()
	subs := lo.Values(signOut)
	subsMu.Unlock()

	for _, fn := range subs {
		fn()
	}

	log.Info("signed out")
	return nil
}

// Purchase adds a course to the signed-in user's library. No payment is taken.
// The returned message is meant for the user.
func Purchase(courses Courses, courseID string) (string, error) {
	email, ok := sessionEmail().Get()
	if !ok {
		return "", ErrNotSignedIn
	}

	found, err := loadAccount(email)
	if err != nil {
		return "", err
	}
	acc, ok := found.Get()
	if !ok {
		return "", ErrNotSignedIn
	}

	course, err := courses.Course(courseID)
	if errors.Is(err, catalog.ErrNotFound) {
		return "", ErrCourseNotFound
	}
	if err != nil {
		return "", err
	}

	if acc.User.Owns(courseID) {
		return "", ErrAlreadyOwned
	}

	acc.User.PurchasedCourses = append(acc.User.PurchasedCourses, courseID)
	if err := saveAccount(acc); err != nil {
		return "", fmt.Errorf("save purchase: %w", err)
	}

	log.Infof("%s purchased course %s", email, courseID)
	return fmt.Sprintf("Successfully purchased \"%s\"! You can now access all course content.", course.Title), nil
}
