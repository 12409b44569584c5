package handlers

import (
	"github.com/oksasatya/fashion-studio/internal/domain/asset"
	"github.com/oksasatya/fashion-studio/internal/domain/model"
	"github.com/oksasatya/fashion-studio/internal/domain/store"
	"github.com/oksasatya/fashion-studio/internal/domain/user"
)

// Responses reuse the persistence records, which already carry json tags.

func userView(u *user.User) user.Record     { return user.ToPersistence(u) }
func storeView(s *store.Store) store.Record { return store.ToPersistence(s) }
func modelView(m *model.Model) model.Record { return model.ToPersistence(m) }
func assetView(a *asset.Asset) asset.Record { return asset.ToPersistence(a) }

func listView[T any, R any](items []T, view func(T) R) []R {
	out := make([]R, len(items))
	for i, it := range items {
		out[i] = view(it)
	}
	return out
}
