package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundzyworld/site-backend/pkg/chatbot"
	"github.com/soundzyworld/site-backend/pkg/sitecontent"
	"github.com/soundzyworld/site-backend/pkg/sitecontent/feed"
	"github.com/soundzyworld/site-backend/pkg/sitecontent/repo/memory"
)

func newTestService(t *testing.T) sitecontent.Service {
	t.Helper()
	svc, err := sitecontent.New(
		sitecontent.WithRepository(memory.New()),
		sitecontent.WithEventFeed(feed.New()),
	)
	require.NoError(t, err)
	return svc
}

func TestGetCollectionEmpty(t *testing.T) {
	svc := newTestService(t)
	router := NewPublicHandler(svc, nil).Routes()

	req := httptest.NewRequest("GET", "/content/homepage_services", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var col sitecontent.ContentCollection
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&col))
	assert.Equal(t, "homepage_services", col.Key)
	assert.Empty(t, col.Items)
}

func TestGetCollectionRoundTrip(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ReplaceCollection(context.Background(), sitecontent.ReplaceCollectionRequest{
		Key: "homepage_services",
		Items: []sitecontent.ContentItem{
			{ID: "dj", Title: "DJ Services", Description: "Professional sets", Extra: map[string]interface{}{"cta": "Book Now"}},
		},
	})
	require.NoError(t, err)

	router := NewPublicHandler(svc, nil).Routes()
	req := httptest.NewRequest("GET", "/content/homepage_services", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	// Extra fields ride flat on the wire next to the known ones.
	assert.Contains(t, rec.Body.String(), `"cta":"Book Now"`)
	assert.Contains(t, rec.Body.String(), `"title":"DJ Services"`)
}

func TestListCollections(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.ReplaceCollection(context.Background(), sitecontent.ReplaceCollectionRequest{
		Key:   "footer_services",
		Items: []sitecontent.ContentItem{{ID: "x", Title: "X"}},
	})
	require.NoError(t, err)

	router := NewPublicHandler(svc, nil).Routes()

	t.Run("requires keys", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/content", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing keys come back empty", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/content?keys=footer_services,creative_services", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var cols []sitecontent.ContentCollection
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&cols))
		require.Len(t, cols, 2)
		assert.Len(t, cols[0].Items, 1)
		assert.Empty(t, cols[1].Items)
	})
}

func TestPublicProductsActiveOnly(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.UpsertProduct(ctx, sitecontent.UpsertProductRequest{Name: "Speakers", IsActive: true})
	require.NoError(t, err)
	_, err = svc.UpsertProduct(ctx, sitecontent.UpsertProductRequest{Name: "Retired Mixer", IsActive: false})
	require.NoError(t, err)

	router := NewPublicHandler(svc, nil).Routes()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/products", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var products []sitecontent.Product
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&products))
	require.Len(t, products, 1)
	assert.Equal(t, "Speakers", products[0].Name)
}

func TestCreateLead(t *testing.T) {
	svc := newTestService(t)
	router := NewPublicHandler(svc, nil).Routes()

	body, _ := json.Marshal(CreateLeadRequest{
		Name:        "Ada",
		Email:       "ada@example.com",
		ServiceType: "dj_booking",
		Message:     "Wedding in December",
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/leads", bytes.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)

	var lead sitecontent.Lead
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&lead))
	assert.Equal(t, "new", lead.Status)
	assert.Equal(t, "medium", lead.Priority)
	assert.Equal(t, "website", lead.Source)
}

func TestCreateLeadValidation(t *testing.T) {
	svc := newTestService(t)
	router := NewPublicHandler(svc, nil).Routes()

	body, _ := json.Marshal(CreateLeadRequest{Name: "No Email"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/leads", bytes.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecordTapePlay(t *testing.T) {
	svc := newTestService(t)
	tape, err := svc.UpsertTape(context.Background(), sitecontent.UpsertTapeRequest{
		Title: "Summer Mix", Status: "active",
	})
	require.NoError(t, err)

	router := NewPublicHandler(svc, nil).Routes()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/tapes/"+tape.ID.String()+"/play", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"play_count":1}`, rec.Body.String())
}

func TestGetPostHidesDrafts(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.UpsertPost(context.Background(), sitecontent.UpsertPostRequest{
		Title: "Draft Post", Body: "...", Published: false,
	})
	require.NoError(t, err)

	router := NewPublicHandler(svc, nil).Routes()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/posts/draft-post", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type okResponder struct{}

func (okResponder) Reply(ctx context.Context, message string) (string, error) {
	return "Happy to help with your event!", nil
}

func (okResponder) Model() string { return "test-model" }

func TestChatEndpoint(t *testing.T) {
	svc := newTestService(t)
	chat := chatbot.NewService(svc, okResponder{}, nil)
	router := NewPublicHandler(svc, chat).Routes()

	body, _ := json.Marshal(ChatRequest{
		Message:   "I want to book a DJ",
		SessionID: "session_1700000000000_abc123def",
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/chat", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)

	var reply chatbot.Reply
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&reply))
	assert.Equal(t, "booking_inquiry", reply.Intent)
	assert.Equal(t, "Happy to help with your event!", reply.Response)
}

func TestChatEndpointValidation(t *testing.T) {
	svc := newTestService(t)
	router := NewPublicHandler(svc, nil).Routes()

	body, _ := json.Marshal(ChatRequest{Message: "hi"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/chat", bytes.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatEndpointNoAssistant(t *testing.T) {
	svc := newTestService(t)
	router := NewPublicHandler(svc, nil).Routes()

	body, _ := json.Marshal(ChatRequest{Message: "hi", SessionID: "session_1_abcdefghi"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/chat", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)

	var reply chatbot.Reply
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&reply))
	assert.Equal(t, "error", reply.Intent)
	assert.Equal(t, chatbot.FallbackResponse, reply.Response)
}
