package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCredentialsValidate(t *testing.T) {
	tests := []struct {
		name    string
		creds   Credentials
		wantErr string
	}{
		{"Valid", Credentials{Email: "a@b.c", Password: "pw"}, ""},
		{"MissingEmail", Credentials{Password: "pw"}, "email is required"},
		{"MissingPassword", Credentials{Email: "a@b.c"}, "password is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestRegistrationValidate(t *testing.T) {
	tests := []struct {
		name    string
		reg     Registration
		wantErr string
	}{
		{"Valid", Registration{Username: "sakura", Email: "a@b.c", Password: "pw"}, ""},
		{"MissingUsername", Registration{Email: "a@b.c", Password: "pw"}, "username is required"},
		{"MissingEmail", Registration{Username: "sakura", Password: "pw"}, "email is required"},
		{"MissingPassword", Registration{Username: "sakura", Email: "a@b.c"}, "password is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestRegistrationCredentials(t *testing.T) {
	reg := Registration{Username: "sakura", Email: "a@b.c", Password: "pw"}
	creds := reg.Credentials()
	assert.Equal(t, "a@b.c", creds.Email)
	assert.Equal(t, "pw", creds.Password)
}

func TestIsScheduleDay(t *testing.T) {
	for _, day := range ScheduleDays {
		assert.True(t, IsScheduleDay(day), day)
	}
	assert.False(t, IsScheduleDay("someday"))
	assert.False(t, IsScheduleDay("Monday"), "day names are lowercase")
	assert.False(t, IsScheduleDay(""))
}
