package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axiomcity/axiom-susu/internal/model"
)

func TestEventService_EmitAndPublish(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	var published []*model.AnalyticsEvent
	env.events.SetOnEvent(func(ctx context.Context, event *model.AnalyticsEvent) error {
		published = append(published, event)
		return nil
	})

	hubID := int64(1)
	groupID := int64(2)
	poolID := int64(42)
	event := NewEvent(model.EventGraduation, &hubID, &groupID, walletOrganizer, &model.EventMetadata{
		PoolID: &poolID,
		Mode:   "community",
	})
	require.NotEmpty(t, event.EventID)

	env.events.Emit(ctx, event)

	// 落库 + 发布
	funnel, err := env.events.Funnel(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), funnel[string(model.EventGraduation)])
	require.Len(t, published, 1)

	// 元数据序列化为 JSON
	var meta model.EventMetadata
	require.NoError(t, json.Unmarshal([]byte(published[0].Metadata), &meta))
	require.NotNil(t, meta.PoolID)
	assert.Equal(t, int64(42), *meta.PoolID)
}

func TestEventService_PublishFailureIsNonFatal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.events.SetOnEvent(func(ctx context.Context, event *model.AnalyticsEvent) error {
		return errors.New("broker down")
	})

	hubID := int64(1)
	env.events.Emit(ctx, NewEvent(model.EventHubJoin, &hubID, nil, walletMember2, nil))

	// 发布失败不影响落库
	funnel, err := env.events.Funnel(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), funnel[string(model.EventHubJoin)])
}
