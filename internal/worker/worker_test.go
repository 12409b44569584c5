package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/fashion-studio/internal/application"
	"github.com/oksasatya/fashion-studio/internal/domain/asset"
	"github.com/oksasatya/fashion-studio/internal/domain/model"
	"github.com/oksasatya/fashion-studio/internal/domain/shared"
	"github.com/oksasatya/fashion-studio/internal/domain/store"
	"github.com/oksasatya/fashion-studio/internal/domain/user"
	"github.com/oksasatya/fashion-studio/internal/infrastructure/messaging"
	"github.com/oksasatya/fashion-studio/pkg/mailer/templates"
)

type modelRepo struct {
	model.Repository
	items map[string]*model.Model
}

func (r *modelRepo) FindByID(_ context.Context, id string) (*model.Model, error) { return r.items[id], nil }

type storeRepo struct {
	store.Repository
	items map[string]*store.Store
}

func (r *storeRepo) FindByID(_ context.Context, id string) (*store.Store, error) { return r.items[id], nil }

type userRepo struct {
	user.Repository
	items map[string]*user.User
}

func (r *userRepo) FindByID(_ context.Context, id string) (*user.User, error) { return r.items[id], nil }

type fakeIndex struct {
	indexed, removed []string
}

func (f *fakeIndex) Index(_ context.Context, m *model.Model) error {
	f.indexed = append(f.indexed, m.ID().Value())
	return nil
}

func (f *fakeIndex) Remove(_ context.Context, id string) error {
	f.removed = append(f.removed, id)
	return nil
}

func (f *fakeIndex) Search(context.Context, string, string, int) ([]application.ModelHit, error) {
	return nil, nil
}

type outbox struct {
	to, subject, text string
	sent              int
}

func (o *outbox) Send(_ context.Context, to, subject, text, _ string) error {
	o.to, o.subject, o.text = to, subject, text
	o.sent++
	return nil
}

type fixture struct {
	owner  *user.User
	store  *store.Store
	model  *model.Model
	models *modelRepo
	stores *storeRepo
	users  *userRepo
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	u, err := user.New(user.NewInput{ID: "user_1", FullName: "Rin Sato"})
	require.NoError(t, err)
	s, err := store.New(store.NewInput{OwnerID: "user_1", Name: "Atelier Nova"})
	require.NoError(t, err)
	m, err := model.New(model.NewInput{
		StoreID: s.ID().Value(), Name: "Mara", Gender: "FEMALE", AgeRange: "AGE_25_34",
		Ethnicity: "MIXED", BodyType: "ATHLETIC", Prompt: "short dark hair",
	})
	require.NoError(t, err)
	return fixture{
		owner:  u,
		store:  s,
		model:  m,
		models: &modelRepo{items: map[string]*model.Model{m.ID().Value(): m}},
		stores: &storeRepo{items: map[string]*store.Store{s.ID().Value(): s}},
		users:  &userRepo{items: map[string]*user.User{"user_1": u}},
	}
}

func message(t *testing.T, e shared.Event) messaging.Message {
	t.Helper()
	body, err := messaging.Encode(e)
	require.NoError(t, err)
	m, err := messaging.Decode(body)
	require.NoError(t, err)
	return m
}

func TestModelProjector(t *testing.T) {
	f := newFixture(t)
	idx := &fakeIndex{}
	p := &ModelProjector{Models: f.models, Indexer: idx}
	ctx := context.Background()

	require.NoError(t, p.Handle(ctx, message(t, f.model.DomainEvents()[0])))
	assert.Equal(t, []string{f.model.ID().Value()}, idx.indexed)

	gone := model.NewArchivedEvent("model_gone", model.ArchivedData{StoreID: f.store.ID().Value()})
	require.NoError(t, p.Handle(ctx, message(t, gone)))
	assert.Equal(t, []string{"model_gone"}, idx.removed)

	storeEvent := f.store.DomainEvents()[0]
	assert.ErrorIs(t, p.Handle(ctx, message(t, storeEvent)), messaging.ErrSkip)
}

func TestNotifier(t *testing.T) {
	f := newFixture(t)
	box := &outbox{}
	n := &Notifier{
		Stores: f.stores, Users: f.users, Models: f.models, Sender: box,
		To: "ops@example.com", Brand: templates.Branding{AppName: "Fashion Studio"},
	}
	ctx := context.Background()

	rejected := model.NewCalibrationRejectedEvent(f.model.ID().Value(),
		model.CalibrationRejectedData{StoreID: f.store.ID().Value(), Reason: "identity drift"})
	require.NoError(t, n.Handle(ctx, message(t, rejected)))
	assert.Equal(t, "ops@example.com", box.to)
	assert.Equal(t, `[Fashion Studio] Calibration of "Mara" was rejected`, box.subject)
	assert.Contains(t, box.text, "Hi Rin Sato")
	assert.Contains(t, box.text, "identity drift")

	failed := asset.NewFailedEvent("asset_1", asset.FailedData{
		StoreID: f.store.ID().Value(), Reason: "content is image/jpeg", Filename: "dress.png",
	})
	require.NoError(t, n.Handle(ctx, message(t, failed)))
	assert.Contains(t, box.subject, "dress.png")

	orphan := asset.NewFailedEvent("asset_2", asset.FailedData{StoreID: "store_missing", Filename: "x.png"})
	assert.ErrorIs(t, n.Handle(ctx, message(t, orphan)), messaging.ErrSkip)
	assert.Equal(t, 2, box.sent)
}

func TestRouter(t *testing.T) {
	var calls []string
	ok := func(context.Context, messaging.Message) error { calls = append(calls, "ok"); return nil }
	skip := func(context.Context, messaging.Message) error { calls = append(calls, "skip"); return messaging.ErrSkip }
	boom := func(context.Context, messaging.Message) error { calls = append(calls, "boom"); return errors.New("boom") }

	r := NewRouter().On(ok, "A", "B").On(skip, "B", "C").On(boom, "C")
	ctx := context.Background()

	assert.NoError(t, r.Handle(ctx, messaging.Message{EventType: "A"}))
	assert.ErrorIs(t, r.Handle(ctx, messaging.Message{EventType: "B"}), messaging.ErrSkip)

	err := r.Handle(ctx, messaging.Message{EventType: "C"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, messaging.ErrSkip)

	assert.NoError(t, r.Handle(ctx, messaging.Message{EventType: "unrouted"}))
	assert.Equal(t, []string{"ok", "ok", "skip", "skip", "boom"}, calls)
}
