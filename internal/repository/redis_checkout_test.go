package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/metinatakli/movie-checkout/internal/domain"
	"github.com/metinatakli/movie-checkout/internal/mocks"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRedisCheckoutRepository_Get(t *testing.T) {
	tests := []struct {
		name    string
		cmd     func() *redis.StringCmd
		want    []byte
		wantErr error
	}{
		{
			name: "returns stored snapshot",
			cmd: func() *redis.StringCmd {
				cmd := redis.NewStringCmd(context.Background())
				cmd.SetVal(`{"step":1}`)
				return cmd
			},
			want: []byte(`{"step":1}`),
		},
		{
			name: "missing key maps to checkout not found",
			cmd: func() *redis.StringCmd {
				cmd := redis.NewStringCmd(context.Background())
				cmd.SetErr(redis.Nil)
				return cmd
			},
			wantErr: domain.ErrCheckoutNotFound,
		},
		{
			name: "redis failure is returned as is",
			cmd: func() *redis.StringCmd {
				cmd := redis.NewStringCmd(context.Background())
				cmd.SetErr(mocks.MockRedisError{Msg: "connection refused"})
				return cmd
			},
			wantErr: mocks.MockRedisError{Msg: "connection refused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mocks.MockRedisClient)
			client.On("Get", mock.Anything, "checkout:sess-1").Return(tt.cmd())

			repo := NewRedisCheckoutRepository(client)

			got, err := repo.Get(context.Background(), "sess-1")
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			client.AssertExpectations(t)
		})
	}
}

func TestRedisCheckoutRepository_Save(t *testing.T) {
	client := new(mocks.MockRedisClient)
	data := []byte(`{"step":2}`)

	cmd := redis.NewStatusCmd(context.Background())
	cmd.SetVal("OK")
	client.On("Set", mock.Anything, "checkout:sess-1", data, 20*time.Minute).Return(cmd)

	repo := NewRedisCheckoutRepository(client)

	err := repo.Save(context.Background(), "sess-1", data, 20*time.Minute)
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestRedisCheckoutRepository_Lock(t *testing.T) {
	tests := []struct {
		name     string
		acquired bool
		wantErr  error
	}{
		{name: "free lock is taken", acquired: true},
		{name: "held lock is rejected", acquired: false, wantErr: domain.ErrCheckoutLocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mocks.MockRedisClient)

			var stored string
			cmd := redis.NewBoolCmd(context.Background())
			cmd.SetVal(tt.acquired)
			client.On("SetNX", mock.Anything, "checkout:sess-1:lock", mock.AnythingOfType("string"), time.Minute).
				Run(func(args mock.Arguments) { stored = args.String(2) }).
				Return(cmd)

			repo := NewRedisCheckoutRepository(client)

			token, err := repo.Lock(context.Background(), "sess-1", time.Minute)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.Equal(t, stored, token)
			}

			client.AssertExpectations(t)
		})
	}
}

func TestRedisCheckoutRepository_LockTokensDiffer(t *testing.T) {
	client := new(mocks.MockRedisClient)

	cmd := redis.NewBoolCmd(context.Background())
	cmd.SetVal(true)
	client.On("SetNX", mock.Anything, "checkout:sess-1:lock", mock.Anything, time.Minute).Return(cmd)

	repo := NewRedisCheckoutRepository(client)

	first, err := repo.Lock(context.Background(), "sess-1", time.Minute)
	require.NoError(t, err)
	second, err := repo.Lock(context.Background(), "sess-1", time.Minute)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestRedisCheckoutRepository_Unlock(t *testing.T) {
	client := new(mocks.MockRedisClient)

	cmd := redis.NewCmd(context.Background())
	cmd.SetVal(int64(1))
	client.On("EvalSha", mock.Anything, mock.Anything, []string{"checkout:sess-1:lock"}, []interface{}{"token-1"}).Return(cmd)

	repo := NewRedisCheckoutRepository(client)

	require.NoError(t, repo.Unlock(context.Background(), "sess-1", "token-1"))
	client.AssertExpectations(t)
}

func TestRedisCheckoutRepository_UnlockLoadsMissingScript(t *testing.T) {
	client := new(mocks.MockRedisClient)

	noScript := redis.NewCmd(context.Background())
	noScript.SetErr(mocks.MockRedisError{Msg: "NOSCRIPT No matching script"})
	client.On("EvalSha", mock.Anything, mock.Anything, []string{"checkout:sess-1:lock"}, []interface{}{"token-1"}).Return(noScript)

	cmd := redis.NewCmd(context.Background())
	cmd.SetVal(int64(0))
	client.On("Eval", mock.Anything, mock.Anything, []string{"checkout:sess-1:lock"}, []interface{}{"token-1"}).Return(cmd)

	repo := NewRedisCheckoutRepository(client)

	require.NoError(t, repo.Unlock(context.Background(), "sess-1", "token-1"))
	client.AssertExpectations(t)
}

func TestRedisCheckoutRepository_Delete(t *testing.T) {
	client := new(mocks.MockRedisClient)

	cmd := redis.NewIntCmd(context.Background())
	cmd.SetVal(1)
	client.On("Del", mock.Anything, []string{"checkout:sess-1"}).Return(cmd)

	repo := NewRedisCheckoutRepository(client)

	require.NoError(t, repo.Delete(context.Background(), "sess-1"))
	client.AssertExpectations(t)
}
