package middleware

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/todo-ratelimit/internal/analytics"
	"github.com/serroba/todo-ratelimit/internal/handlers"
	"github.com/serroba/todo-ratelimit/internal/messaging"
	"github.com/serroba/todo-ratelimit/internal/ratelimit"
	"go.uber.org/zap"
)

// HeaderClientIP is set by the edge proxy to the original client address.
const HeaderClientIP = "CF-Connecting-IP"

// Rate limit response headers.
const (
	HeaderLimit      = "X-RateLimit-Limit"
	HeaderRemaining  = "X-RateLimit-Remaining"
	HeaderReset      = "X-RateLimit-Reset"
	HeaderRetryAfter = "Retry-After"
)

type exceededBody struct {
	Message string `json:"message"`
}

// RateLimiter returns a Huma middleware that charges every request to the
// client identity and answers 429 once the identity is over its limit.
//
// Operations can opt out through ratelimit.MetadataKey with Disabled: true.
func RateLimiter(
	api huma.API,
	limiter ratelimit.Limiter,
	publish messaging.Publish[analytics.VerdictEvent],
	logger *zap.Logger,
) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if cfg := ratelimit.GetEndpointConfig(ctx); cfg != nil && cfg.Disabled {
			next(ctx)

			return
		}

		identity := Identity(ctx)

		verdict, err := limiter.Limit(ctx.Context(), identity)
		if err != nil {
			logger.Error("rate limit check failed",
				zap.String("identity", identity),
				zap.String("path", ctx.URL().Path),
				zap.Error(err),
			)

			if errors.Is(err, ratelimit.ErrStoreUnavailable) {
				_ = huma.WriteErr(api, ctx, http.StatusServiceUnavailable, "rate limiter unavailable", err)

				return
			}

			_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "internal server error")

			return
		}

		publishVerdict(ctx, publish, identity, verdict, logger)
		writeLimitHeaders(ctx, verdict)

		if !verdict.Admitted {
			logger.Debug("rate limit exceeded",
				zap.String("identity", identity),
				zap.String("path", ctx.URL().Path),
				zap.Duration("retry_after", verdict.RetryAfter),
			)

			writeExceeded(ctx, verdict)

			return
		}

		next(ctx)
	}
}

// Identity returns the client identity for rate limiting.
func Identity(ctx huma.Context) string {
	if ip := ctx.Header(HeaderClientIP); ip != "" {
		return ip
	}

	return ratelimit.AnonymousIdentity
}

func writeLimitHeaders(ctx huma.Context, v ratelimit.Verdict) {
	ctx.SetHeader(HeaderLimit, strconv.FormatInt(v.Limit, 10))
	ctx.SetHeader(HeaderRemaining, strconv.FormatInt(v.Remaining, 10))
	ctx.SetHeader(HeaderReset, strconv.FormatInt(v.ResetAt.Unix(), 10))
}

func writeExceeded(ctx huma.Context, v ratelimit.Verdict) {
	ctx.SetHeader(HeaderRetryAfter, strconv.Itoa(retryAfterSeconds(v.RetryAfter)))
	ctx.SetHeader("Content-Type", "application/json")
	ctx.SetStatus(http.StatusTooManyRequests)

	_ = json.NewEncoder(ctx.BodyWriter()).Encode(exceededBody{Message: "Rate limit exceeded"})
}

// retryAfterSeconds rounds up so clients never retry early. Never less than one.
func retryAfterSeconds(d time.Duration) int {
	return max(1, int(math.Ceil(d.Seconds())))
}

func publishVerdict(
	ctx huma.Context,
	publish messaging.Publish[analytics.VerdictEvent],
	identity string,
	v ratelimit.Verdict,
	logger *zap.Logger,
) {
	meta := handlers.RequestMetaFromContext(ctx.Context())

	event := &analytics.VerdictEvent{
		RequestID: meta.RequestID,
		Identity:  identity,
		Method:    ctx.Method(),
		Path:      ctx.URL().Path,
		Admitted:  v.Admitted,
		Limit:     v.Limit,
		Remaining: v.Remaining,
		ResetAt:   v.ResetAt,
		At:        time.Now(),
		UserAgent: meta.UserAgent,
	}

	if err := publish(ctx.Context(), event); err != nil {
		logger.Warn("failed to publish verdict event", zap.String("identity", identity), zap.Error(err))
	}
}
