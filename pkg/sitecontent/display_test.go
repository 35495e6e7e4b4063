package sitecontent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soundzyworld/site-backend/pkg/sitecontent"
)

func TestStockStatusFor(t *testing.T) {
	tests := []struct {
		quantity int
		label    string
		tone     string
	}{
		{0, "Out of Stock", sitecontent.ToneDestructive},
		{1, "Low Stock", sitecontent.ToneSecondary},
		{4, "Low Stock", sitecontent.ToneSecondary},
		{5, "In Stock", sitecontent.ToneDefault},
		{100, "In Stock", sitecontent.ToneDefault},
	}
	for _, tt := range tests {
		got := sitecontent.StockStatusFor(tt.quantity)
		assert.Equal(t, tt.label, got.Label, "quantity %d", tt.quantity)
		assert.Equal(t, tt.tone, got.Tone, "quantity %d", tt.quantity)
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "₦0"},
		{500000, "₦5,000"},
		{12345678, "₦123,456.78"},
		{100000000, "₦1,000,000"},
		{99, "₦0.99"},
		{-500000, "-₦5,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sitecontent.FormatPrice(tt.cents))
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "--", sitecontent.FormatDuration(0))
	assert.Equal(t, "--", sitecontent.FormatDuration(-3))
	assert.Equal(t, "0:45", sitecontent.FormatDuration(45))
	assert.Equal(t, "3:05", sitecontent.FormatDuration(185))
	assert.Equal(t, "61:00", sitecontent.FormatDuration(3660))
}

func TestSplitTags(t *testing.T) {
	assert.Nil(t, sitecontent.SplitTags(""))
	assert.Nil(t, sitecontent.SplitTags("  , , "))
	assert.Equal(t, []string{"afrobeats"}, sitecontent.SplitTags("afrobeats"))
	assert.Equal(t, []string{"afrobeats", "amapiano"}, sitecontent.SplitTags(" afrobeats ,amapiano,"))
}

func TestLeadStatusColor(t *testing.T) {
	assert.Equal(t, "blue", sitecontent.LeadStatusColor("new"))
	assert.Equal(t, "green", sitecontent.LeadStatusColor("qualified"))
	assert.Equal(t, "red", sitecontent.LeadStatusColor("lost"))
	assert.Equal(t, "gray", sitecontent.LeadStatusColor("mystery"))
}

func TestBadgeTones(t *testing.T) {
	assert.Equal(t, sitecontent.ToneDestructive, sitecontent.LeadPriorityTone("high"))
	assert.Equal(t, sitecontent.ToneOutline, sitecontent.LeadPriorityTone("low"))
	assert.Equal(t, sitecontent.ToneDefault, sitecontent.AnnouncementStatusTone("published"))
	assert.Equal(t, sitecontent.ToneDestructive, sitecontent.AnnouncementPriorityTone("urgent"))
	assert.Equal(t, sitecontent.ToneDefault, sitecontent.TapeStatusTone("featured"))
	assert.Equal(t, sitecontent.ToneOutline, sitecontent.SessionStatusTone("closed"))
}
