// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dwkim-lab/homepick/internal/logging"
)

// BearerAuth returns middleware validating a bearer JWT signed with the
// configured HMAC secret. An empty secret disables authentication, for
// local development only; the condition is logged once at setup.
func BearerAuth(secret string) func(http.HandlerFunc) http.HandlerFunc {
	logger := logging.WithComponent("api")

	if secret == "" {
		logger.Warn().
			Msg("No JWT secret configured, policy writes are unauthenticated")
		return func(next http.HandlerFunc) http.HandlerFunc {
			return next
		}
	}

	key := []byte(secret)
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			rw := NewResponseWriter(w, r)

			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				rw.Unauthorized("인증 토큰이 필요합니다.")
				return
			}

			token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return key, nil
			}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
			if err != nil || !token.Valid {
				logger.Warn().Err(err).
					Str("path", r.URL.Path).
					Msg("Rejected policy write with invalid token")
				rw.Unauthorized("유효하지 않은 토큰입니다.")
				return
			}

			next(w, r)
		}
	}
}
