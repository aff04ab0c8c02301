package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	auth "github.com/lucasstarsz/lemon-mart"
)

func TestSubject_ReplaysLatestValueToNewSubscribers(t *testing.T) {
	subject := auth.NewSubject("initial")

	var seen []string
	cancel := subject.Subscribe(func(v string) { seen = append(seen, v) })
	defer cancel()

	assert.Equal(t, []string{"initial"}, seen)

	subject.Set("updated")
	assert.Equal(t, []string{"initial", "updated"}, seen)

	// A late subscriber only sees the latest value.
	var late []string
	cancelLate := subject.Subscribe(func(v string) { late = append(late, v) })
	defer cancelLate()
	assert.Equal(t, []string{"updated"}, late)
}

func TestSubject_Get(t *testing.T) {
	subject := auth.NewSubject(41)
	assert.Equal(t, 41, subject.Get())

	subject.Set(42)
	assert.Equal(t, 42, subject.Get())
}

func TestSubject_CancelStopsNotifications(t *testing.T) {
	subject := auth.NewSubject(0)

	count := 0
	cancel := subject.Subscribe(func(int) { count++ })
	assert.Equal(t, 1, count)

	cancel()
	subject.Set(1)
	assert.Equal(t, 1, count)

	// Cancelling twice is safe.
	cancel()
}

func TestSubject_NotifiesInRegistrationOrder(t *testing.T) {
	subject := auth.NewSubject("")

	var order []string
	c1 := subject.Subscribe(func(v string) {
		if v != "" {
			order = append(order, "first:"+v)
		}
	})
	defer c1()
	c2 := subject.Subscribe(func(v string) {
		if v != "" {
			order = append(order, "second:"+v)
		}
	})
	defer c2()

	subject.Set("x")
	assert.Equal(t, []string{"first:x", "second:x"}, order)
}
