package feed_test

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundzyworld/site-backend/pkg/sitecontent"
	"github.com/soundzyworld/site-backend/pkg/sitecontent/feed"
)

func TestTableWideSubscription(t *testing.T) {
	hub := feed.New()
	events, cancel := hub.Subscribe(sitecontent.TableProducts, "")
	defer cancel()

	hub.Publish(sitecontent.Event{
		Table: sitecontent.TableProducts,
		Key:   "some-id",
		Op:    sitecontent.OpInsert,
	})

	select {
	case evt := <-events:
		assert.Equal(t, "some-id", evt.Key)
	case <-time.After(time.Second):
		t.Fatal("table-wide subscriber missed event")
	}
}

func TestKeyedSubscription(t *testing.T) {
	hub := feed.New()
	matched, cancelMatched := hub.Subscribe(sitecontent.TableSiteSettings, "homepage_services")
	defer cancelMatched()
	other, cancelOther := hub.Subscribe(sitecontent.TableSiteSettings, "footer_links")
	defer cancelOther()

	hub.Publish(sitecontent.Event{
		Table: sitecontent.TableSiteSettings,
		Key:   "homepage_services",
		Op:    sitecontent.OpUpdate,
	})

	select {
	case evt := <-matched:
		assert.Equal(t, "homepage_services", evt.Key)
	case <-time.After(time.Second):
		t.Fatal("keyed subscriber missed its event")
	}

	select {
	case evt := <-other:
		t.Fatalf("subscriber for another key got event %+v", evt)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestPublishSkipsFullBuffers(t *testing.T) {
	hub := feed.New()
	events, cancel := hub.Subscribe(sitecontent.TableLeads, "")
	defer cancel()

	// Nobody reads; publishing far past the buffer must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Publish(sitecontent.Event{Table: sitecontent.TableLeads, Op: sitecontent.OpInsert})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber buffer")
	}

	// The buffer holds the first events; the rest were dropped.
	n := 0
	for {
		select {
		case <-events:
			n++
			continue
		default:
		}
		break
	}
	assert.Greater(t, n, 0)
	assert.Less(t, n, 100)
}

func TestCancelIsIdempotent(t *testing.T) {
	hub := feed.New()
	events, cancel := hub.Subscribe(sitecontent.TableOrders, "")

	cancel()
	cancel()

	_, ok := <-events
	assert.False(t, ok, "channel should be closed after cancel")
	assert.Zero(t, hub.SubscriberCount())
}

func TestSubscriberCount(t *testing.T) {
	hub := feed.New()
	_, cancel1 := hub.Subscribe(sitecontent.TableProducts, "")
	_, cancel2 := hub.Subscribe(sitecontent.TableProducts, "p1")
	assert.Equal(t, 2, hub.SubscriberCount())
	cancel1()
	cancel2()
	assert.Zero(t, hub.SubscriberCount())
}

func TestServeWebSocket(t *testing.T) {
	hub := feed.New()
	server := httptest.NewServer(http.HandlerFunc(hub.ServeWebSocket))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?table=site_settings&key=homepage_services"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Subscription registers during the upgrade handshake; wait for it.
	require.Eventually(t, func() bool { return hub.SubscriberCount() == 1 },
		time.Second, 5*time.Millisecond)

	hub.Publish(sitecontent.Event{
		Table: sitecontent.TableSiteSettings,
		Key:   "homepage_services",
		Op:    sitecontent.OpUpdate,
		Value: []sitecontent.ContentItem{{ID: "dj"}},
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var evt sitecontent.Event
	require.NoError(t, conn.ReadJSON(&evt))
	assert.Equal(t, sitecontent.TableSiteSettings, evt.Table)
	assert.Equal(t, sitecontent.OpUpdate, evt.Op)
}

func TestServeWebSocketRequiresTable(t *testing.T) {
	hub := feed.New()
	rec := httptest.NewRecorder()
	hub.ServeWebSocket(rec, httptest.NewRequest("GET", "/feed/ws", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServeSSE(t *testing.T) {
	hub := feed.New()
	server := httptest.NewServer(http.HandlerFunc(hub.ServeSSE))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", server.URL+"?table=products", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	require.Eventually(t, func() bool { return hub.SubscriberCount() == 1 },
		time.Second, 5*time.Millisecond)

	hub.Publish(sitecontent.Event{Table: sitecontent.TableProducts, Op: sitecontent.OpInsert})

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(line, "data: "))
	assert.Contains(t, line, `"products"`)
}
