package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yananas974/PokemonBattle-sub000/internal/constants"
	"github.com/yananas974/PokemonBattle-sub000/internal/logging"
	"github.com/yananas974/PokemonBattle-sub000/internal/storage"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type AuthHandler struct {
	repo storage.Repository
}

func NewAuthHandler(repo storage.Repository) *AuthHandler {
	return &AuthHandler{repo: repo}
}

type GoogleOAuthCallbackRequest struct {
	Code string `json:"code"`
}

type googleProfile struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// googleOAuthConfig builds the code-exchange config from the environment.
// It returns nil when the client credentials are missing.
func googleOAuthConfig() *oauth2.Config {
	id := os.Getenv(constants.EnvGoogleClientID)
	secret := os.Getenv(constants.EnvGoogleClientSecret)
	if id == "" || secret == "" {
		return nil
	}
	return &oauth2.Config{
		ClientID:     id,
		ClientSecret: secret,
		RedirectURL:  constants.GoogleOAuthRedirect,
		Scopes:       constants.GoogleUserInfoScopes,
		Endpoint:     google.Endpoint,
	}
}

func fetchGoogleProfile(ctx context.Context, client *http.Client) (*googleProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, constants.GoogleUserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf(constants.ErrFailedReadUserData, err.Error())
	}
	var p googleProfile
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf(constants.ErrFailedReadUserData, err.Error())
	}
	return &p, nil
}

// GoogleOAuthCallback exchanges an authorization code for the player's Google
// profile and issues the session cookie used to identify them in battles.
func (h *AuthHandler) GoogleOAuthCallback(c *gin.Context) {
	var req GoogleOAuthCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	conf := googleOAuthConfig()
	if conf == nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrMissingGoogleEnv})
		return
	}

	ctx := c.Request.Context()
	token, err := conf.Exchange(ctx, req.Code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrFailedExchangeToken, constants.JSONKeyDetails: err.Error()})
		return
	}
	profile, err := fetchGoogleProfile(ctx, conf.Client(ctx, token))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedGetUserInfo, constants.JSONKeyDetails: err.Error()})
		return
	}
	if profile.Email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrNoEmailInGoogleProfile})
		return
	}

	// A stored trainer name wins over the Google profile name; first logins
	// create the profile that battle stats accumulate on.
	name := profile.Name
	if h.repo != nil {
		if ps, err := h.repo.GetStatsByEmail(profile.Email); err == nil && ps.PlayerName != "" {
			name = ps.PlayerName
		}
		if err := h.repo.UpsertUser(profile.Email, name); err != nil {
			logging.Warn("failed to upsert player profile", err, logging.Fields{constants.LogFieldPlayer: profile.Email})
		}
	}

	sess, err := createSessionToken(profile.Email, name, sessionTTL, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateSession, constants.JSONKeyDetails: err.Error()})
		return
	}
	setSessionCookie(c, sess, sessionTTL)

	out := gin.H{"email": profile.Email, "name": name}
	if profile.Picture != "" {
		out["picture"] = profile.Picture
	}
	c.JSON(http.StatusOK, out)
}
