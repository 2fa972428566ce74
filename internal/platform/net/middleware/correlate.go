package middleware

import (
	"net/http"

	"chatner/internal/platform/logger"
	pnet "chatner/internal/platform/net"
)

// ConversationHeader names the header chat frontends use to tie requests
// from one conversation together
const ConversationHeader = "X-Conversation-ID"

// Correlate copies the request id and conversation id onto the context so
// downstream logs and recorded events carry them
// must run after RequestID
func Correlate() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			reqID := pnet.RequestID(ctx)
			convID := r.Header.Get(ConversationHeader)

			ctx = pnet.WithRequest(ctx, reqID, convID)
			ctx = logger.WithRequest(ctx, reqID, convID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
