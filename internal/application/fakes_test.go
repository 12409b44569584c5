package application

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/fashion-studio/internal/domain/asset"
	"github.com/oksasatya/fashion-studio/internal/domain/model"
	"github.com/oksasatya/fashion-studio/internal/domain/shared"
	"github.com/oksasatya/fashion-studio/internal/domain/store"
	"github.com/oksasatya/fashion-studio/internal/domain/user"
)

// The in-memory repositories embed the interface they fake so that methods
// a test does not need panic instead of silently returning zero values.

type memUsers struct {
	user.Repository
	items map[string]*user.User
}

func (r *memUsers) Create(_ context.Context, u *user.User) (string, error) {
	r.items[u.ID().Value()] = u.ClearDomainEvents()
	return u.ID().Value(), nil
}

func (r *memUsers) Update(_ context.Context, u *user.User) error {
	r.items[u.ID().Value()] = u.ClearDomainEvents()
	return nil
}

func (r *memUsers) FindByID(_ context.Context, id string) (*user.User, error) { return r.items[id], nil }

func (r *memUsers) Exists(_ context.Context, id string) (bool, error) {
	_, ok := r.items[id]
	return ok, nil
}

func (r *memUsers) FindByExternalID(_ context.Context, externalID string) (*user.User, error) {
	for _, u := range r.items {
		if ext := u.ExternalID(); ext != nil && ext.Value() == externalID {
			return u, nil
		}
	}
	return nil, nil
}

type memStores struct {
	store.Repository
	items map[string]*store.Store
}

func (r *memStores) Create(_ context.Context, s *store.Store) (string, error) {
	r.items[s.ID().Value()] = s.ClearDomainEvents()
	return s.ID().Value(), nil
}

func (r *memStores) Update(_ context.Context, s *store.Store) error {
	r.items[s.ID().Value()] = s.ClearDomainEvents()
	return nil
}

func (r *memStores) FindByID(_ context.Context, id string) (*store.Store, error) { return r.items[id], nil }

func (r *memStores) FindByOwnerID(_ context.Context, ownerID string, opts shared.QueryOptions) ([]*store.Store, error) {
	var out []*store.Store
	for _, s := range r.items {
		if s.OwnerID().Value() == ownerID && (opts.IncludeDeleted || !s.IsDeleted()) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memStores) Count(_ context.Context, f store.Filter) (int, error) {
	n := 0
	for _, s := range r.items {
		if s.OwnerID().Value() == f.OwnerID && (f.IncludeDeleted || !s.IsDeleted()) {
			n++
		}
	}
	return n, nil
}

type memModels struct {
	model.Repository
	items map[string]*model.Model
}

func (r *memModels) Create(_ context.Context, m *model.Model) (string, error) {
	r.items[m.ID().Value()] = m.ClearDomainEvents()
	return m.ID().Value(), nil
}

func (r *memModels) Update(_ context.Context, m *model.Model) error {
	r.items[m.ID().Value()] = m.ClearDomainEvents()
	return nil
}

func (r *memModels) FindByID(_ context.Context, id string) (*model.Model, error) { return r.items[id], nil }

func (r *memModels) FindMany(_ context.Context, f model.Filter) ([]*model.Model, error) {
	var out []*model.Model
	for _, m := range r.items {
		if m.StoreID().Value() == f.StoreID && !m.IsDeleted() && (f.Status == "" || m.Status() == f.Status) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memModels) Count(ctx context.Context, f model.Filter) (int, error) {
	items, err := r.FindMany(ctx, f)
	return len(items), err
}

type memAssets struct {
	asset.Repository
	items   map[string]*asset.Asset
	updates int
	// failOn makes Update return the mapped error for that asset id.
	failOn map[string]error
}

func (r *memAssets) Create(_ context.Context, a *asset.Asset) (string, error) {
	r.items[a.ID().Value()] = a.ClearDomainEvents()
	return a.ID().Value(), nil
}

func (r *memAssets) Update(_ context.Context, a *asset.Asset) error {
	if err := r.failOn[a.ID().Value()]; err != nil {
		return err
	}
	r.updates++
	r.items[a.ID().Value()] = a.ClearDomainEvents()
	return nil
}

func (r *memAssets) FindByID(_ context.Context, id string) (*asset.Asset, error) { return r.items[id], nil }

func (r *memAssets) FindByStatus(_ context.Context, status asset.Status, _ shared.QueryOptions) ([]*asset.Asset, error) {
	var out []*asset.Asset
	for _, a := range r.items {
		if a.Status() == status && !a.IsDeleted() {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().Before(out[j].CreatedAt()) })
	return out, nil
}

type memStorage struct {
	objects map[string][]byte
	types   map[string]string
}

func (s *memStorage) SignedUploadURL(_ context.Context, path, _ string) (string, time.Time, error) {
	return "https://upload.test/" + path, time.Now().Add(15 * time.Minute), nil
}

func (s *memStorage) Attrs(_ context.Context, path string) (ObjectAttrs, error) {
	b, ok := s.objects[path]
	if !ok {
		return ObjectAttrs{}, ErrObjectNotFound
	}
	return ObjectAttrs{Size: int64(len(b)), ContentType: s.types[path]}, nil
}

func (s *memStorage) ReadHead(_ context.Context, path string, n int64) ([]byte, error) {
	b, ok := s.objects[path]
	if !ok {
		return nil, ErrObjectNotFound
	}
	if int64(len(b)) > n {
		b = b[:n]
	}
	return b, nil
}

func (s *memStorage) Upload(_ context.Context, path, contentType string, r io.Reader) (int64, error) {
	var buf bytes.Buffer
	n, err := io.Copy(&buf, r)
	if err != nil {
		return 0, err
	}
	s.objects[path] = buf.Bytes()
	s.types[path] = contentType
	return n, nil
}

func (s *memStorage) Delete(_ context.Context, path string) error {
	delete(s.objects, path)
	return nil
}

func (s *memStorage) PublicURL(path string) string { return "https://cdn.test/" + path }

type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.Event
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) types() []shared.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]shared.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType)
	}
	return out
}

func (p *recordingPublisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

type harness struct {
	users   *memUsers
	stores  *memStores
	models  *memModels
	assets  *memAssets
	storage *memStorage
	pub     *recordingPublisher

	userSvc  *UserService
	storeSvc *StoreService
	modelSvc *ModelService
	assetSvc *AssetService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	h := &harness{
		users:   &memUsers{items: map[string]*user.User{}},
		stores:  &memStores{items: map[string]*store.Store{}},
		models:  &memModels{items: map[string]*model.Model{}},
		assets:  &memAssets{items: map[string]*asset.Asset{}},
		storage: &memStorage{objects: map[string][]byte{}, types: map[string]string{}},
		pub:     &recordingPublisher{},
	}
	guard := NewGuard(h.users, h.stores)
	h.userSvc = NewUserService(h.users, h.pub, logger)
	h.storeSvc = NewStoreService(h.stores, h.assets, guard, h.pub, logger)
	h.modelSvc = NewModelService(h.models, h.assets, guard, nil, h.pub, logger)
	h.assetSvc = NewAssetService(h.assets, guard, h.storage, h.pub, logger)
	return h
}

func (h *harness) user(t *testing.T, id string) *user.User {
	t.Helper()
	u, err := h.userSvc.Register(context.Background(), user.NewInput{ID: id, FullName: "Rin Sato"})
	require.NoError(t, err)
	return u
}

func (h *harness) store(t *testing.T, ownerID string) *store.Store {
	t.Helper()
	s, err := h.storeSvc.Create(context.Background(), ownerID, CreateStoreInput{Name: "Atelier Nova"})
	require.NoError(t, err)
	return s
}

// suspendStore applies an operator suspension directly through the repository.
func (h *harness) suspendStore(t *testing.T, id string) {
	t.Helper()
	next, err := h.stores.items[id].UpdateStatus(store.StatusSuspended, "chargeback")
	require.NoError(t, err)
	h.stores.items[id] = next.ClearDomainEvents()
}

func (h *harness) suspendUser(t *testing.T, id string) {
	t.Helper()
	next, err := h.users.items[id].UpdateStatus(user.StatusSuspended)
	require.NoError(t, err)
	h.users.items[id] = next.ClearDomainEvents()
}

// pngBytes is a minimal PNG signature followed by an IHDR chunk header.
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)

var jpegBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}, make([]byte, 64)...)
