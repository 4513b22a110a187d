package db

import (
	"bitwise74/auth-api/internal/model"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNew_SQLiteMigrates(t *testing.T) {
	d, err := New(DriverSQLite, fmt.Sprintf("file:conn_%d?mode=memory&cache=shared", time.Now().UnixNano()))
	require.NoError(t, err)
	t.Cleanup(func() { Close(d) })

	assert.True(t, d.Migrator().HasTable(&model.User{}))
	assert.True(t, d.Migrator().HasTable(&model.FAQ{}))
	assert.True(t, d.Migrator().HasTable(&model.ContactMessage{}))
}

func TestNew_DuplicateEmailTranslated(t *testing.T) {
	d, err := New(DriverSQLite, fmt.Sprintf("file:dup_%d?mode=memory&cache=shared", time.Now().UnixNano()))
	require.NoError(t, err)
	t.Cleanup(func() { Close(d) })

	require.NoError(t, d.Create(&model.User{ID: "a", Email: "a@x.com"}).Error)

	err = d.Create(&model.User{ID: "b", Email: "a@x.com"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := New("mysql", "whatever")
	assert.Error(t, err)
}
