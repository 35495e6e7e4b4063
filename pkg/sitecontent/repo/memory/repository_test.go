package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundzyworld/site-backend/pkg/sitecontent"
)

func TestCollections(t *testing.T) {
	ctx := context.Background()
	repo := New()

	t.Run("missing key", func(t *testing.T) {
		_, err := repo.GetCollection(ctx, "homepage_services")
		assert.ErrorIs(t, err, sitecontent.ErrCollectionNotFound)
	})

	t.Run("save and get", func(t *testing.T) {
		col := &sitecontent.ContentCollection{
			Key: "homepage_services",
			Items: []sitecontent.ContentItem{
				{ID: "dj", Title: "DJ Services", Description: "Professional DJ sets"},
			},
			UpdatedAt: time.Now().UTC(),
		}
		require.NoError(t, repo.SaveCollection(ctx, col))

		got, err := repo.GetCollection(ctx, "homepage_services")
		require.NoError(t, err)
		assert.Equal(t, "homepage_services", got.Key)
		require.Len(t, got.Items, 1)
		assert.Equal(t, "DJ Services", got.Items[0].Title)

		// Mutating the returned copy must not touch the stored value.
		got.Items[0].Title = "changed"
		again, err := repo.GetCollection(ctx, "homepage_services")
		require.NoError(t, err)
		assert.Equal(t, "DJ Services", again.Items[0].Title)
	})

	t.Run("list skips missing keys", func(t *testing.T) {
		cols, err := repo.ListCollections(ctx, []string{"homepage_services", "footer_services"})
		require.NoError(t, err)
		assert.Len(t, cols, 1)
	})
}

func TestLeads(t *testing.T) {
	ctx := context.Background()
	repo := New()

	lead := &sitecontent.Lead{
		ID:          uuid.New(),
		Name:        "Ada",
		Email:       "ada@example.com",
		ServiceType: "dj_booking",
		Status:      string(sitecontent.LeadStatusNew),
		Priority:    sitecontent.PriorityMedium,
		Source:      "website",
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, repo.CreateLead(ctx, lead))

	t.Run("get", func(t *testing.T) {
		got, err := repo.GetLead(ctx, lead.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ada", got.Name)
	})

	t.Run("update", func(t *testing.T) {
		lead.Status = string(sitecontent.LeadStatusContacted)
		require.NoError(t, repo.UpdateLead(ctx, lead))

		got, err := repo.GetLead(ctx, lead.ID)
		require.NoError(t, err)
		assert.Equal(t, "contacted", got.Status)
	})

	t.Run("update missing", func(t *testing.T) {
		missing := &sitecontent.Lead{ID: uuid.New()}
		assert.ErrorIs(t, repo.UpdateLead(ctx, missing), sitecontent.ErrLeadNotFound)
	})

	t.Run("count since", func(t *testing.T) {
		n, err := repo.CountLeadsSince(ctx, time.Now().UTC().Add(-time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		n, err = repo.CountLeadsSince(ctx, time.Now().UTC().Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("list newest first", func(t *testing.T) {
		older := &sitecontent.Lead{
			ID:        uuid.New(),
			Name:      "Bisi",
			Email:     "bisi@example.com",
			CreatedAt: time.Now().UTC().Add(-2 * time.Hour),
		}
		require.NoError(t, repo.CreateLead(ctx, older))

		leads, err := repo.ListLeads(ctx)
		require.NoError(t, err)
		require.Len(t, leads, 2)
		assert.Equal(t, "Ada", leads[0].Name)
		assert.Equal(t, "Bisi", leads[1].Name)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteLead(ctx, lead.ID))
		_, err := repo.GetLead(ctx, lead.ID)
		assert.ErrorIs(t, err, sitecontent.ErrLeadNotFound)
		assert.ErrorIs(t, repo.DeleteLead(ctx, lead.ID), sitecontent.ErrLeadNotFound)
	})
}

func TestProducts(t *testing.T) {
	ctx := context.Background()
	repo := New()

	active := &sitecontent.Product{
		ID:            uuid.New(),
		Name:          "Studio Headphones",
		Category:      "audio",
		PriceCents:    4500000,
		StockQuantity: 3,
		IsActive:      true,
		CreatedAt:     time.Now().UTC(),
	}
	inactive := &sitecontent.Product{
		ID:            uuid.New(),
		Name:          "Retired Mixer",
		Category:      "audio",
		StockQuantity: 50,
		IsActive:      false,
		CreatedAt:     time.Now().UTC().Add(-time.Minute),
	}
	require.NoError(t, repo.SaveProduct(ctx, active))
	require.NoError(t, repo.SaveProduct(ctx, inactive))

	t.Run("list active only", func(t *testing.T) {
		products, err := repo.ListProducts(ctx, true)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Studio Headphones", products[0].Name)
	})

	t.Run("list all", func(t *testing.T) {
		products, err := repo.ListProducts(ctx, false)
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("low stock counts active only", func(t *testing.T) {
		n, err := repo.CountLowStock(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteProduct(ctx, inactive.ID))
		_, err := repo.GetProduct(ctx, inactive.ID)
		assert.ErrorIs(t, err, sitecontent.ErrProductNotFound)
	})
}

func TestTapes(t *testing.T) {
	ctx := context.Background()
	repo := New()

	tape := &sitecontent.DJTape{
		ID:         uuid.New(),
		Title:      "Summer Mix Vol. 3",
		ArtistName: "DJ Soundzy",
		Tags:       []string{"afrobeats", "amapiano"},
		Status:     string(sitecontent.TapeStatusActive),
		CreatedAt:  time.Now().UTC(),
	}
	archived := &sitecontent.DJTape{
		ID:        uuid.New(),
		Title:     "Old Set",
		Status:    string(sitecontent.TapeStatusArchived),
		CreatedAt: time.Now().UTC().Add(-time.Hour),
	}
	require.NoError(t, repo.SaveTape(ctx, tape))
	require.NoError(t, repo.SaveTape(ctx, archived))

	t.Run("list excludes archived", func(t *testing.T) {
		tapes, err := repo.ListTapes(ctx, false)
		require.NoError(t, err)
		require.Len(t, tapes, 1)
		assert.Equal(t, "Summer Mix Vol. 3", tapes[0].Title)
	})

	t.Run("list includes archived", func(t *testing.T) {
		tapes, err := repo.ListTapes(ctx, true)
		require.NoError(t, err)
		assert.Len(t, tapes, 2)
	})

	t.Run("increment plays", func(t *testing.T) {
		n, err := repo.IncrementTapePlays(ctx, tape.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = repo.IncrementTapePlays(ctx, tape.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("increment missing tape", func(t *testing.T) {
		_, err := repo.IncrementTapePlays(ctx, uuid.New())
		assert.ErrorIs(t, err, sitecontent.ErrTapeNotFound)
	})

	t.Run("tags copied on read", func(t *testing.T) {
		got, err := repo.GetTape(ctx, tape.ID)
		require.NoError(t, err)
		got.Tags[0] = "changed"

		again, err := repo.GetTape(ctx, tape.ID)
		require.NoError(t, err)
		assert.Equal(t, "afrobeats", again.Tags[0])
	})
}

func TestPosts(t *testing.T) {
	ctx := context.Background()
	repo := New()

	post := &sitecontent.BlogPost{
		ID:        uuid.New(),
		Title:     "Behind the Decks",
		Slug:      "behind-the-decks",
		Body:      "...",
		Published: true,
		CreatedAt: time.Now().UTC(),
	}
	draft := &sitecontent.BlogPost{
		ID:        uuid.New(),
		Title:     "Draft",
		Slug:      "draft",
		CreatedAt: time.Now().UTC().Add(-time.Minute),
	}
	require.NoError(t, repo.SavePost(ctx, post))
	require.NoError(t, repo.SavePost(ctx, draft))

	t.Run("get by slug", func(t *testing.T) {
		got, err := repo.GetPostBySlug(ctx, "behind-the-decks")
		require.NoError(t, err)
		assert.Equal(t, post.ID, got.ID)

		_, err = repo.GetPostBySlug(ctx, "nope")
		assert.ErrorIs(t, err, sitecontent.ErrPostNotFound)
	})

	t.Run("list published only", func(t *testing.T) {
		posts, err := repo.ListPosts(ctx, true)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "Behind the Decks", posts[0].Title)
	})
}

func TestOrders(t *testing.T) {
	ctx := context.Background()
	repo := New()

	now := time.Now().UTC()
	today := &sitecontent.Order{
		ID:            uuid.New(),
		CustomerName:  "Chinedu",
		CustomerEmail: "chinedu@example.com",
		TotalCents:    2500000,
		Status:        string(sitecontent.OrderStatusPaid),
		CreatedAt:     now,
	}
	yesterday := &sitecontent.Order{
		ID:         uuid.New(),
		TotalCents: 1000000,
		Status:     string(sitecontent.OrderStatusPaid),
		CreatedAt:  now.Add(-36 * time.Hour),
	}
	require.NoError(t, repo.CreateOrder(ctx, today))
	require.NoError(t, repo.CreateOrder(ctx, yesterday))

	t.Run("orders since", func(t *testing.T) {
		orders, err := repo.OrdersSince(ctx, now.Add(-time.Hour))
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, today.ID, orders[0].ID)
	})

	t.Run("list newest first", func(t *testing.T) {
		orders, err := repo.ListOrders(ctx)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, today.ID, orders[0].ID)
	})
}

func TestChatSessions(t *testing.T) {
	ctx := context.Background()
	repo := New()

	now := time.Now().UTC()
	active := &sitecontent.ChatSession{
		ID:           uuid.New(),
		SessionID:    "session_1700000000000_abc123def",
		Status:       string(sitecontent.ChatSessionActive),
		LastActivity: now,
		CreatedAt:    now,
	}
	resolved := &sitecontent.ChatSession{
		ID:           uuid.New(),
		SessionID:    "session_1690000000000_xyz987wvu",
		Status:       string(sitecontent.ChatSessionResolved),
		LastActivity: now.Add(-time.Hour),
		CreatedAt:    now.Add(-time.Hour),
	}
	require.NoError(t, repo.SaveSession(ctx, active))
	require.NoError(t, repo.SaveSession(ctx, resolved))

	t.Run("filter by status", func(t *testing.T) {
		status := string(sitecontent.ChatSessionActive)
		sessions, err := repo.ListSessions(ctx, sitecontent.SessionFilters{Status: &status})
		require.NoError(t, err)
		require.Len(t, sessions, 1)
		assert.Equal(t, active.SessionID, sessions[0].SessionID)
	})

	t.Run("search by session id", func(t *testing.T) {
		sessions, err := repo.ListSessions(ctx, sitecontent.SessionFilters{Search: "xyz987"})
		require.NoError(t, err)
		require.Len(t, sessions, 1)
		assert.Equal(t, resolved.SessionID, sessions[0].SessionID)
	})

	t.Run("limit and offset", func(t *testing.T) {
		limit, offset := 1, 1
		sessions, err := repo.ListSessions(ctx, sitecontent.SessionFilters{Limit: &limit, Offset: &offset})
		require.NoError(t, err)
		require.Len(t, sessions, 1)
		assert.Equal(t, resolved.SessionID, sessions[0].SessionID)
	})

	t.Run("count by status", func(t *testing.T) {
		n, err := repo.CountSessionsByStatus(ctx, string(sitecontent.ChatSessionActive))
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("messages in order", func(t *testing.T) {
		first := &sitecontent.ChatMessage{
			ID:        uuid.New(),
			SessionID: active.SessionID,
			Direction: sitecontent.MessageDirectionInbound,
			Message:   "Can I book a DJ?",
			CreatedAt: now,
		}
		second := &sitecontent.ChatMessage{
			ID:        uuid.New(),
			SessionID: active.SessionID,
			Direction: sitecontent.MessageDirectionOutbound,
			Message:   "Absolutely!",
			CreatedAt: now.Add(time.Second),
		}
		require.NoError(t, repo.CreateMessage(ctx, first))
		require.NoError(t, repo.CreateMessage(ctx, second))

		msgs, err := repo.ListMessages(ctx, active.SessionID)
		require.NoError(t, err)
		require.Len(t, msgs, 2)
		assert.Equal(t, "Can I book a DJ?", msgs[0].Message)
		assert.Equal(t, "Absolutely!", msgs[1].Message)
	})

	t.Run("delete removes messages", func(t *testing.T) {
		require.NoError(t, repo.DeleteSession(ctx, active.SessionID))
		_, err := repo.GetSession(ctx, active.SessionID)
		assert.ErrorIs(t, err, sitecontent.ErrSessionNotFound)

		msgs, err := repo.ListMessages(ctx, active.SessionID)
		require.NoError(t, err)
		assert.Empty(t, msgs)
	})
}
