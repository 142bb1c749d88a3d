package handler

import (
	"encoding/json"
	"net/http"
	"time"

	jwt "github.com/dgrijalva/jwt-go"

	"github.com/jobboardhq/jobs-api/internal/apierror"
	"github.com/jobboardhq/jobs-api/internal/authoriser"
	"github.com/jobboardhq/jobs-api/internal/middleware"
	"github.com/jobboardhq/jobs-api/internal/server"
)

// PostAuthSessionHandler signs a user on. Valid credentials produce a JWT
// stored in the session cookie, which the per-route middlewares check on
// every gated request.
func PostAuthSessionHandler(svr server.Server, auth authoriser.Authoriser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		decoder := json.NewDecoder(r.Body)
		authRq := &authoriser.AuthRq{}
		if err := decoder.Decode(&authRq); err != nil {
			svr.Error(w, apierror.NewValidation([]string{"malformed json payload"}))
			return
		}
		authRes := auth.ValidAuthRequest(r.Context(), authRq)
		if !authRes.Valid {
			svr.Error(w, apierror.NewUnauthorized("invalid username or password"))
			return
		}
		sess, err := svr.SessionStore.Get(r, middleware.SessionName)
		if err != nil {
			svr.Log(err, "unable to get session from store")
			svr.JSON(w, http.StatusInternalServerError, nil)
			return
		}
		stdClaims := jwt.StandardClaims{
			ExpiresAt: time.Now().Add(30 * 24 * time.Hour).UTC().Unix(),
			IssuedAt:  time.Now().UTC().Unix(),
			Issuer:    svr.GetConfig().SiteHost,
		}
		claims := middleware.UserJWT{
			IsAdmin:        authRes.IsAdmin,
			Username:       authRes.Username,
			Email:          authRes.Email,
			StandardClaims: stdClaims,
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		ss, err := token.SignedString(svr.GetJWTSigningKey())
		if err != nil {
			svr.Log(err, "unable to sign jwt")
			svr.JSON(w, http.StatusInternalServerError, nil)
			return
		}
		sess.Values["jwt"] = ss
		if err := sess.Save(r, w); err != nil {
			svr.Log(err, "unable to save session")
			svr.JSON(w, http.StatusInternalServerError, nil)
			return
		}
		svr.JSON(w, http.StatusOK, map[string]interface{}{
			"username": authRes.Username,
			"isAdmin":  authRes.IsAdmin,
		})
	}
}
