package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pines-admin-api/internal/domain"
	"github.com/jhoicas/pines-admin-api/internal/domain/entity"
	"github.com/jhoicas/pines-admin-api/pkg/pinapi"
)

func TestStore_CreateGetDestroy(t *testing.T) {
	st := NewStore("jwt-secret", time.Hour)
	user := entity.User{ID: "u1", Role: entity.RoleVendedor}

	sess, err := st.Create("backend-token", user, pinapi.Credentials{APIKey: "k", APISecret: "s"})
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)

	got, err := st.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "backend-token", got.BackendToken)
	assert.Equal(t, "u1", got.User.ID)

	st.Destroy(sess.ID)
	_, err = st.Get(sess.ID)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	st.Destroy(sess.ID) // idempotente
}

func TestStore_SecretoSelladoSeRecupera(t *testing.T) {
	st := NewStore("jwt-secret", 0)
	sess, err := st.Create("tok", entity.User{ID: "u1"}, pinapi.Credentials{APIKey: "key", APISecret: "super-secreto"})
	require.NoError(t, err)

	assert.NotContains(t, string(sess.sealedSecret), "super-secreto", "el secreto no se guarda en claro")

	creds, err := st.Credentials(sess)
	require.NoError(t, err)
	assert.Equal(t, pinapi.Credentials{APIKey: "key", APISecret: "super-secreto"}, creds)
}

func TestStore_OtraLlaveNoAbreElSecreto(t *testing.T) {
	a := NewStore("secret-a", 0)
	b := NewStore("secret-b", 0)
	sess, err := a.Create("tok", entity.User{}, pinapi.Credentials{APIKey: "key", APISecret: "s"})
	require.NoError(t, err)

	_, err = b.Credentials(sess)
	assert.Error(t, err)
}

func TestStore_SesionVencida(t *testing.T) {
	st := NewStore("x", time.Minute)
	base := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return base }

	sess, err := st.Create("tok", entity.User{}, pinapi.Credentials{})
	require.NoError(t, err)

	st.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, err = st.Get(sess.ID)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.Zero(t, st.Len(), "la sesión vencida se elimina")
}

func TestStore_SweepQuitaVencidasNoConsultadas(t *testing.T) {
	st := NewStore("x", time.Minute)
	base := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return base }

	for i := 0; i < 3; i++ {
		_, err := st.Create("tok", entity.User{}, pinapi.Credentials{})
		require.NoError(t, err)
	}
	require.Equal(t, 3, st.Len())

	st.now = func() time.Time { return base.Add(2 * time.Minute) }
	// un login nuevo purga las vencidas aunque nadie las haya consultado
	fresh, err := st.Create("tok", entity.User{}, pinapi.Credentials{})
	require.NoError(t, err)
	assert.Equal(t, 1, st.Len())

	st.now = func() time.Time { return base.Add(4 * time.Minute) }
	assert.Equal(t, 1, st.Sweep())
	assert.Zero(t, st.Len())
	_, err = st.Get(fresh.ID)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestStore_SweepSinTTLNoQuitaNada(t *testing.T) {
	st := NewStore("x", 0)
	_, err := st.Create("tok", entity.User{}, pinapi.Credentials{})
	require.NoError(t, err)
	assert.Zero(t, st.Sweep())
	assert.Equal(t, 1, st.Len())
}

func TestStore_UpdateUser(t *testing.T) {
	st := NewStore("x", 0)
	sess, err := st.Create("tok", entity.User{ID: "u1", Name: "viejo"}, pinapi.Credentials{})
	require.NoError(t, err)

	st.UpdateUser(sess.ID, entity.User{ID: "u1", Name: "nuevo"})
	got, err := st.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "nuevo", got.User.Name)
}
