package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edunir/tripshare/internal/app/models"
)

func msg(id int64, parentID *int64, content string, at time.Time) *models.ChatMessage {
	return &models.ChatMessage{
		ID:        id,
		TripID:    7,
		SenderID:  1,
		Content:   content,
		ParentID:  parentID,
		CreatedAt: at,
	}
}

func int64Ptr(v int64) *int64 { return &v }

func TestThreadMessagesBuildsTree(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	flat := []*models.ChatMessage{
		msg(1, nil, "where do we meet?", base),
		msg(2, int64Ptr(1), "station, platform 3", base.Add(time.Minute)),
		msg(3, nil, "who brings the tent?", base.Add(2*time.Minute)),
		msg(4, int64Ptr(2), "perfect, see you there", base.Add(3*time.Minute)),
	}

	threads := threadMessages(flat)
	require.Len(t, threads, 2)

	assert.Equal(t, int64(1), threads[0].ID)
	require.Len(t, threads[0].Replies, 1)
	assert.Equal(t, int64(2), threads[0].Replies[0].ID)
	require.Len(t, threads[0].Replies[0].Replies, 1)
	assert.Equal(t, int64(4), threads[0].Replies[0].Replies[0].ID)

	assert.Equal(t, int64(3), threads[1].ID)
	assert.Empty(t, threads[1].Replies)
}

// A reply whose parent fell outside the fetched window is shown at the
// top level instead of disappearing.
func TestThreadMessagesPromotesOrphans(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	flat := []*models.ChatMessage{
		msg(10, int64Ptr(5), "replying to an older message", base),
		msg(11, nil, "fresh topic", base.Add(time.Minute)),
	}

	threads := threadMessages(flat)
	require.Len(t, threads, 2)
	assert.Equal(t, int64(10), threads[0].ID)
	assert.Equal(t, int64(11), threads[1].ID)
}

func TestThreadMessagesEmpty(t *testing.T) {
	assert.Empty(t, threadMessages(nil))
}
