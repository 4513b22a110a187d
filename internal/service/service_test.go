package service

import (
	"bitwise74/auth-api/db"
	"bitwise74/auth-api/internal/model"
	"bitwise74/auth-api/pkg/security"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())

	d, err := db.New(db.DriverSQLite, fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano()))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close(d) })

	return d
}

// Lowest bcrypt cost keeps the suite fast
func newTestHasher() *security.Hasher {
	return &security.Hasher{Cost: bcrypt.MinCost}
}

func newTestSigner(t *testing.T) *security.Signer {
	t.Helper()

	s, err := security.NewSigner(security.SignerConfig{
		AccessSecret:  "access-test",
		RefreshSecret: "refresh-test",
	})
	require.NoError(t, err)

	return s
}

func newTestSessions(t *testing.T) (*Sessions, *gorm.DB) {
	t.Helper()

	d := newTestDB(t)
	return NewSessions(d, newTestHasher(), newTestSigner(t)), d
}

func getUser(t *testing.T, d *gorm.DB, email string) *model.User {
	t.Helper()

	var u model.User
	require.NoError(t, d.Where("email = ?", email).First(&u).Error)

	return &u
}

type sentMail struct {
	to   string
	code string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent chan sentMail
	err  error
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{sent: make(chan sentMail, 16)}
}

func (f *fakeMailer) SendResetCode(_ context.Context, to, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sent <- sentMail{to: to, code: code}
	return f.err
}

func (f *fakeMailer) wait(t *testing.T) sentMail {
	t.Helper()

	select {
	case m := <-f.sent:
		return m
	case <-time.After(time.Second * 5):
		t.Fatal("no mail was sent")
		return sentMail{}
	}
}
