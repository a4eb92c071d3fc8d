package persistence

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/career-os/internal/application/service"
	"github.com/khoahotran/career-os/internal/domain/document"
	"github.com/khoahotran/career-os/pkg/apperror"
)

const usageKeyPrefix = "career-os:usage:"

const (
	fieldCalls         = "calls"
	fieldInput         = "input_tokens"
	fieldOutput        = "output_tokens"
	fieldCacheRead     = "cache_read_input_tokens"
	fieldCacheCreation = "cache_creation_input_tokens"
)

type redisUsageLedger struct {
	rdb redis.Cmdable
}

func NewRedisUsageLedger(rdb redis.Cmdable) service.UsageLedger {
	return &redisUsageLedger{rdb: rdb}
}

func usageKey(kind document.Kind) string {
	return usageKeyPrefix + string(kind)
}

func (l *redisUsageLedger) Record(ctx context.Context, kind document.Kind, usage document.Usage) error {
	key := usageKey(kind)
	pipe := l.rdb.TxPipeline()
	pipe.HIncrBy(ctx, key, fieldCalls, 1)
	pipe.HIncrBy(ctx, key, fieldInput, usage.InputTokens)
	pipe.HIncrBy(ctx, key, fieldOutput, usage.OutputTokens)
	if usage.CacheReadInputTokens != nil {
		pipe.HIncrBy(ctx, key, fieldCacheRead, *usage.CacheReadInputTokens)
	}
	if usage.CacheCreationInputTokens != nil {
		pipe.HIncrBy(ctx, key, fieldCacheCreation, *usage.CacheCreationInputTokens)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record usage for %s: %w", kind, err)
	}
	return nil
}

func (l *redisUsageLedger) Totals(ctx context.Context) (map[document.Kind]document.UsageTotals, error) {
	totals := make(map[document.Kind]document.UsageTotals, len(document.Kinds))
	for _, kind := range document.Kinds {
		values, err := l.rdb.HGetAll(ctx, usageKey(kind)).Result()
		if err != nil {
			return nil, apperror.ClassifyDatabaseError(fmt.Errorf("read usage for %s: %w", kind, err))
		}
		totals[kind] = document.UsageTotals{
			Calls:                    parseCounter(values[fieldCalls]),
			InputTokens:              parseCounter(values[fieldInput]),
			OutputTokens:             parseCounter(values[fieldOutput]),
			CacheReadInputTokens:     parseCounter(values[fieldCacheRead]),
			CacheCreationInputTokens: parseCounter(values[fieldCacheCreation]),
		}
	}
	return totals, nil
}

func parseCounter(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
