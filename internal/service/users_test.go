package service_test

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/projecthelena/roster/internal/db"
	"github.com/projecthelena/roster/internal/service"
)

type MockLoader struct {
	mock.Mock
}

func (m *MockLoader) LoadUsers(ctx context.Context) ([]db.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]db.User)
	return users, args.Error(1)
}

func TestGetUsers_ReturnsLoaderResult(t *testing.T) {
	loader := &MockLoader{}
	mockUsers := []db.User{db.User(`{"id":1,"name":"Piseth"}`)}
	loader.On("LoadUsers", mock.Anything).Return(mockUsers, nil).Once()

	users, err := service.NewUserService(loader).GetUsers(context.Background())
	require.NoError(t, err)

	want := []db.User{db.User(`{"id":1,"name":"Piseth"}`)}
	if diff := cmp.Diff(want, users); diff != "" {
		t.Errorf("GetUsers mismatch (-want +got):\n%s", diff)
	}
	loader.AssertExpectations(t)
}

func TestGetUsers_EmptyCollection(t *testing.T) {
	loader := &MockLoader{}
	loader.On("LoadUsers", mock.Anything).Return([]db.User{}, nil).Once()

	users, err := service.NewUserService(loader).GetUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
	loader.AssertExpectations(t)
}

func TestGetUsers_PropagatesErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"filesystem", &fs.PathError{Op: "open", Path: "db/user.json", Err: fs.ErrNotExist}},
		{"malformed document", db.ErrMalformedDocument},
		{"arbitrary", errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := &MockLoader{}
			loader.On("LoadUsers", mock.Anything).Return(nil, tt.err).Once()

			users, err := service.NewUserService(loader).GetUsers(context.Background())
			assert.Nil(t, users)
			assert.Same(t, tt.err, err)
			loader.AssertExpectations(t)
		})
	}
}

func TestGetUsers_PassesContext(t *testing.T) {
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")

	loader := &MockLoader{}
	loader.On("LoadUsers", ctx).Return([]db.User{}, nil).Once()

	_, err := service.NewUserService(loader).GetUsers(ctx)
	require.NoError(t, err)
	loader.AssertExpectations(t)
}

func TestGetUsers_AgainstFileStore(t *testing.T) {
	store := db.NewFileStore(db.WriteUsersFile(t, `{"users":[{"id":1,"name":"Piseth"}]}`))

	users, err := service.NewUserService(store).GetUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.JSONEq(t, `{"id":1,"name":"Piseth"}`, string(users[0]))
}
