package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/atscv/internal/client/models"
	"github.com/dmitrijs2005/atscv/internal/client/repositories/kv"
	"github.com/dmitrijs2005/atscv/internal/common"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	db, err := OpenDatabase(context.Background(), filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return New(db, opts...)
}

func TestCreateAccount_SetsSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ok, err := s.CreateAccount(ctx, "a@x.com", []byte("secret"))
	require.NoError(t, err)
	assert.True(t, ok)

	email, signedIn, err := s.CurrentSession(ctx)
	require.NoError(t, err)
	assert.True(t, signedIn)
	assert.Equal(t, "a@x.com", email)

	has, err := s.HasAccount(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestCreateAccount_DuplicateLeavesStateUntouched(t *testing.T) {
	s := newTestStore(t, WithCredentialCheck(true))
	ctx := context.Background()

	ok, err := s.CreateAccount(ctx, "a@x.com", []byte("first"))
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = s.CreateAccount(ctx, "b@x.com", []byte("other"))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.CreateAccount(ctx, "a@x.com", []byte("second"))
	require.NoError(t, err)
	assert.False(t, ok)

	email, _, err := s.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b@x.com", email, "session must not move to the duplicate")

	// The original credential survives.
	ok, err = s.Authenticate(ctx, "a@x.com", []byte("second"))
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = s.Authenticate(ctx, "a@x.com", []byte("first"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateAccount_EmailIsCaseSensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ok, err := s.CreateAccount(ctx, "A@x.com", []byte("p"))
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = s.CreateAccount(ctx, "a@x.com", []byte("p"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAuthenticate_ExistenceOnlyByDefault(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateAccount(ctx, "a@x.com", []byte("secret"))
	require.NoError(t, err)
	require.NoError(t, s.ClearSession(ctx))

	ok, err := s.Authenticate(ctx, "a@x.com", []byte("anything"))
	require.NoError(t, err)
	assert.True(t, ok)

	email, signedIn, err := s.CurrentSession(ctx)
	require.NoError(t, err)
	assert.True(t, signedIn)
	assert.Equal(t, "a@x.com", email)
}

func TestAuthenticate_UnknownAccount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ok, err := s.Authenticate(ctx, "nobody@x.com", []byte("p"))
	require.NoError(t, err)
	assert.False(t, ok)

	_, signedIn, err := s.CurrentSession(ctx)
	require.NoError(t, err)
	assert.False(t, signedIn)
}

func TestClearSession_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ClearSession(ctx))
	_, err := s.CreateAccount(ctx, "a@x.com", []byte("p"))
	require.NoError(t, err)
	require.NoError(t, s.ClearSession(ctx))
	require.NoError(t, s.ClearSession(ctx))

	_, signedIn, err := s.CurrentSession(ctx)
	require.NoError(t, err)
	assert.False(t, signedIn)

	// Account data survives sign-out.
	has, err := s.HasAccount(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestProfile_RoundTripAndMissing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p, err := s.ReadProfile(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Nil(t, p)

	want := models.NewProfile()
	want.PersonalInfo.Name = "Ada"
	want.Skills = []string{"Go"}
	require.NoError(t, s.WriteProfile(ctx, "a@x.com", want))

	got, err := s.ReadProfile(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)

	other, err := s.ReadProfile(ctx, "b@x.com")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func doc(id string, score int) models.Document {
	return models.Document{
		ID:             id,
		JobDescription: "job " + id,
		Body:           "# CV " + id,
		ATSScore:       score,
		GeneratedAt:    fixedNow,
	}
}

func TestDocuments_MissingIsEmpty(t *testing.T) {
	s := newTestStore(t)

	docs, err := s.ReadDocuments(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestDocuments_PrependMostRecentFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PrependDocument(ctx, "a@x.com", doc("1", 80)))
	require.NoError(t, s.PrependDocument(ctx, "a@x.com", doc("2", 90)))

	docs, err := s.ReadDocuments(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "2", docs[0].ID)
	assert.Equal(t, "1", docs[1].ID)

	err = s.PrependDocument(ctx, "a@x.com", doc("1", 70))
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestDocuments_ReplaceKeepsPositionAndJob(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteDocuments(ctx, "a@x.com", []models.Document{doc("2", 90), doc("1", 80)}))

	revised := doc("1", 80).Revised("# revised", fixedNow.Add(time.Hour))
	revised.JobDescription = "ignored"
	require.NoError(t, s.ReplaceDocument(ctx, "a@x.com", revised))

	docs, err := s.ReadDocuments(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "1", docs[1].ID)
	assert.Equal(t, "# revised", docs[1].Body)
	assert.Equal(t, "job 1", docs[1].JobDescription)
	assert.True(t, docs[1].GeneratedAt.Equal(fixedNow.Add(time.Hour)))

	err = s.ReplaceDocument(ctx, "a@x.com", doc("missing", 50))
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDocuments_WriteValidates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.WriteDocuments(ctx, "a@x.com", []models.Document{doc("1", 101)})
	assert.ErrorIs(t, err, models.ErrInvalidScore)

	err = s.PrependDocument(ctx, "a@x.com", doc("", 50))
	assert.ErrorIs(t, err, models.ErrMissingID)
}

func TestDocuments_PerAccount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PrependDocument(ctx, "a@x.com", doc("1", 80)))

	docs, err := s.ReadDocuments(ctx, "b@x.com")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestEntitlement_Monotonic(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	pro, err := s.ReadEntitlement(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, pro)

	ok, err := s.GrantEntitlement(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.GrantEntitlement(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, ok)

	pro, err = s.ReadEntitlement(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, pro)

	pro, err = s.ReadEntitlement(ctx, "b@x.com")
	require.NoError(t, err)
	assert.False(t, pro)
}

func TestEntitlement_EmptyEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ok, err := s.GrantEntitlement(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)

	pro, err := s.ReadEntitlement(ctx, "")
	require.NoError(t, err)
	assert.False(t, pro)
}

func TestCorruptValue(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	repo := kv.NewSQLiteRepository(s.db)
	require.NoError(t, repo.Set(ctx, cvsKey("a@x.com"), []byte("{not json")))
	require.NoError(t, repo.Set(ctx, usersKey(), []byte("[]")))

	_, err := s.ReadDocuments(ctx, "a@x.com")
	assert.ErrorIs(t, err, ErrCorrupt)

	_, err = s.Authenticate(ctx, "a@x.com", []byte("p"))
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestKeysUsePrefix(t *testing.T) {
	assert.Equal(t, "ats_cv_generator_pro_users", usersKey())
	assert.Equal(t, "ats_cv_generator_pro_current_user", currentUserKey())
	assert.Equal(t, "ats_cv_generator_pro_profile_a@x.com", profileKey("a@x.com"))
	assert.Equal(t, "ats_cv_generator_pro_cvs_a@x.com", cvsKey("a@x.com"))
	assert.Equal(t, "ats_cv_generator_pro_status_a@x.com", statusKey("a@x.com"))
}

func TestStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.db")

	db, err := OpenDatabase(ctx, path)
	require.NoError(t, err)
	s := New(db)
	_, err = s.CreateAccount(ctx, "a@x.com", []byte("p"))
	require.NoError(t, err)
	_, err = s.GrantEntitlement(ctx, "a@x.com")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = OpenDatabase(ctx, path)
	require.NoError(t, err)
	defer db.Close()
	s = New(db)

	email, signedIn, err := s.CurrentSession(ctx)
	require.NoError(t, err)
	assert.True(t, signedIn)
	assert.Equal(t, "a@x.com", email)

	pro, err := s.ReadEntitlement(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, pro)
}

func TestCreateAccount_BeginError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin().WillReturnError(errors.New("locked"))

	s := New(db)
	ok, err := s.CreateAccount(context.Background(), "a@x.com", []byte("p"))
	require.Error(t, err)
	assert.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGrantEntitlement_WriteError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO kv_store").WillReturnError(errors.New("disk full"))

	s := New(db)
	ok, err := s.GrantEntitlement(context.Background(), "a@x.com")
	require.Error(t, err)
	assert.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmptyCredentialsRejected(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ok, err := s.CreateAccount(ctx, "", []byte("p"))
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = s.CreateAccount(ctx, "a@x.com", nil)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.CreateAccount(ctx, "a@x.com", []byte("p"))
	require.NoError(t, err)
	ok, err = s.Authenticate(ctx, "a@x.com", []byte{})
	require.NoError(t, err)
	assert.False(t, ok)
}
