package auth

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/nyaruka/phonenumbers"
)

// PhoneType classifies a phone entry.
type PhoneType = string

const (
	PhoneTypeNone   PhoneType = "none"
	PhoneTypeMobile PhoneType = "mobile"
	PhoneTypeHome   PhoneType = "home"
	PhoneTypeWork   PhoneType = "work"
)

// Phone is one entry in a user's ordered phone list.
type Phone struct {
	ID     int       `json:"id"`
	Type   PhoneType `json:"type"`
	Digits string    `json:"digits"`
}

// Name is a structured person name.
type Name struct {
	First  string `json:"first"`
	Middle string `json:"middle,omitempty"`
	Last   string `json:"last"`
}

// Address is a postal address.
type Address struct {
	Line1 string `json:"line1"`
	Line2 string `json:"line2,omitempty"`
	City  string `json:"city"`
	State string `json:"state"`
	Zip   string `json:"zip"`
}

// User is the authenticated principal's profile.
type User struct {
	ID          string     `json:"id,omitempty"`
	Email       string     `json:"email"`
	Name        Name       `json:"name"`
	Picture     string     `json:"picture,omitempty"`
	Role        Role       `json:"role"`
	Active      bool       `json:"userStatus"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Level       int        `json:"level"`
	Address     Address    `json:"address"`
	Phones      []Phone    `json:"phones"`
}

// NewUser returns a user with all defaults.
func NewUser() User {
	return User{
		Role:   RoleNone,
		Phones: []Phone{},
	}
}

// FullName joins first, middle and last, skipping the middle name when it is
// empty.
func (u User) FullName() string {
	first := strings.TrimSpace(u.Name.First)
	last := strings.TrimSpace(u.Name.Last)
	middle := strings.TrimSpace(u.Name.Middle)

	if first == "" && middle == "" && last == "" {
		return ""
	}

	if middle != "" {
		return fmt.Sprintf("%s %s %s", first, middle, last)
	}
	return fmt.Sprintf("%s %s", first, last)
}

// userWire is the transmission shape of a User: the identity field and the
// derived full name never leave the process.
type userWire struct {
	Email       string     `json:"email"`
	Name        Name       `json:"name"`
	Picture     string     `json:"picture,omitempty"`
	Role        Role       `json:"role"`
	Active      bool       `json:"userStatus"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Level       int        `json:"level"`
	Address     Address    `json:"address"`
	Phones      []Phone    `json:"phones"`
}

// MarshalJSON serializes the user for transmission or storage, omitting the
// id and the derived fullName.
func (u User) MarshalJSON() ([]byte, error) {
	return json.Marshal(userWire{
		Email:       u.Email,
		Name:        u.Name,
		Picture:     u.Picture,
		Role:        u.Role,
		Active:      u.Active,
		DateOfBirth: u.DateOfBirth,
		Level:       u.Level,
		Address:     u.Address,
		Phones:      u.Phones,
	})
}

// UnmarshalJSON accepts either an RFC 3339 instant or a bare date for the
// dateOfBirth field.
func (u *User) UnmarshalJSON(data []byte) error {
	type userAlias User
	aux := struct {
		*userAlias
		DateOfBirth any `json:"dateOfBirth,omitempty"`
	}{userAlias: (*userAlias)(u)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	dob, err := coerceDate(aux.DateOfBirth)
	if err != nil {
		return err
	}
	u.DateOfBirth = dob

	return nil
}

// BuildUser constructs a user from an arbitrary untyped payload, coercing a
// string-typed date-of-birth into a date value. A nil payload yields the
// default user.
func BuildUser(payload map[string]any) (User, error) {
	if payload == nil {
		return NewUser(), nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return NewUser(), fmt.Errorf("auth: encode user payload: %w", err)
	}

	user := NewUser()
	if err := json.Unmarshal(data, &user); err != nil {
		return NewUser(), fmt.Errorf("auth: decode user payload: %w", err)
	}

	// Some payloads name the identity field the way the backing document
	// store does.
	if user.ID == "" {
		if id, ok := payload["_id"].(string); ok {
			user.ID = id
		}
	}

	return user, nil
}

func coerceDate(raw any) (*time.Time, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		if v == "" {
			return nil, nil
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, v); err == nil {
				return &t, nil
			}
		}
		return nil, fmt.Errorf("auth: unsupported date value %q", v)
	default:
		return nil, fmt.Errorf("auth: unsupported date type %T", raw)
	}
}

// Validate will run validation rules over the profile.
func (u User) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Email, validation.Required, is.Email),
		validation.Field(&u.Role, validation.By(checkRole)),
		validation.Field(&u.Phones, validation.By(checkPhones)),
	)
}

func checkRole(value any) error {
	role, _ := value.(Role)
	if role == "" {
		return nil
	}
	if !role.IsValid() {
		return fmt.Errorf("unknown role %q", role)
	}
	return nil
}

func checkPhones(value any) error {
	phones, _ := value.([]Phone)
	for _, phone := range phones {
		if phone.Digits == "" {
			return fmt.Errorf("phone %d has no digits", phone.ID)
		}
		parsed, err := phonenumbers.Parse(phone.Digits, "US")
		if err != nil {
			return fmt.Errorf("phone %d: %w", phone.ID, err)
		}
		if !phonenumbers.IsPossibleNumber(parsed) {
			return fmt.Errorf("phone %d is not a possible number", phone.ID)
		}
	}
	return nil
}
