package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"

	"github.com/orenolabs/academy-board/config"
	"github.com/orenolabs/academy-board/middleware"
	"github.com/orenolabs/academy-board/models"
	"github.com/orenolabs/academy-board/repository"
	"github.com/orenolabs/academy-board/services"
	"github.com/orenolabs/academy-board/utils"
)

const tokenLifetime = 72 * time.Hour

// maxAvatarSize caps avatar uploads well below the attachment limit.
const maxAvatarSize = 5 << 20

// AuthController manages registration, login, social login, and profiles.
type AuthController struct {
	profiles repository.ProfileRepository
	blobs    services.BlobStore
}

// NewAuthController creates an AuthController.
func NewAuthController(profiles repository.ProfileRepository, blobs services.BlobStore) *AuthController {
	return &AuthController{profiles: profiles, blobs: blobs}
}

// Register creates a local account. Emails on the configured admin list get
// the admin role at creation; every other profile starts as a regular user.
func (a *AuthController) Register(ctx *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required,email"`
		Password    string `json:"password" binding:"required,min=8"`
		Name        string `json:"name"`
		DisplayName string `json:"display_name"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := a.profiles.GetByEmail(email); err == nil {
		utils.Error(ctx, http.StatusConflict, 40901, "email already registered")
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to check account")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to hash password")
		return
	}

	profile := &models.Profile{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		DisplayName:  utils.Sanitize(strings.TrimSpace(req.DisplayName)),
		Role:         bootstrapRole(email),
	}
	if err := a.profiles.Create(profile); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to create account")
		return
	}

	token, err := utils.GenerateToken(profile.ID, tokenLifetime)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50013, "failed to generate token")
		return
	}
	utils.Success(ctx, gin.H{"token": token, "profile": profile})
}

// Login authenticates a local account.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid request payload")
		return
	}

	profile, err := a.profiles.GetByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil || !utils.CheckPassword(profile.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "invalid email or password")
		return
	}

	token, err := utils.GenerateToken(profile.ID, tokenLifetime)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50013, "failed to generate token")
		return
	}
	utils.Success(ctx, gin.H{"token": token, "profile": profile})
}

// Logout revokes the presented token until its natural expiry.
func (a *AuthController) Logout(ctx *gin.Context) {
	tokenValue, _ := ctx.Get(middleware.ContextTokenKey)
	token, _ := tokenValue.(string)
	if token != "" {
		if claims, err := utils.ParseToken(token); err == nil && claims.ExpiresAt != nil {
			utils.BlacklistToken(token, claims.ExpiresAt.Time)
		}
	}
	utils.Success(ctx, gin.H{"message": "logged out"})
}

// Me returns the authenticated profile.
func (a *AuthController) Me(ctx *gin.Context) {
	utils.Success(ctx, gin.H{"profile": middleware.CurrentProfile(ctx)})
}

// UpdateProfile lets a user edit their own profile fields. The role is never
// writable through the API.
func (a *AuthController) UpdateProfile(ctx *gin.Context) {
	var req struct {
		DisplayName    *string `json:"display_name"`
		Name           *string `json:"name"`
		Gender         *string `json:"gender"`
		Phone          *string `json:"phone"`
		Country        *string `json:"country"`
		JobDescription *string `json:"job_description"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid request payload")
		return
	}

	fields := map[string]interface{}{}
	if req.DisplayName != nil {
		fields["display_name"] = utils.Sanitize(strings.TrimSpace(*req.DisplayName))
	}
	if req.Name != nil {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Gender != nil {
		fields["gender"] = *req.Gender
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Country != nil {
		fields["country"] = *req.Country
	}
	if req.JobDescription != nil {
		fields["job_description"] = *req.JobDescription
	}
	if len(fields) == 0 {
		utils.Error(ctx, http.StatusBadRequest, 40023, "nothing to update")
		return
	}

	actor := middleware.CurrentProfile(ctx)
	if err := a.profiles.UpdateFields(actor.ID, fields); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50014, "failed to update profile")
		return
	}

	profile, err := a.profiles.Get(actor.ID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50015, "failed to reload profile")
		return
	}
	utils.Success(ctx, gin.H{"profile": profile})
}

// UploadAvatar stores a new avatar blob and points the profile at it.
func (a *AuthController) UploadAvatar(ctx *gin.Context) {
	fh, err := ctx.FormFile("file")
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "no file uploaded")
		return
	}
	if fh.Size > maxAvatarSize {
		utils.Error(ctx, http.StatusBadRequest, 40031, "avatar exceeds the 5MB limit")
		return
	}

	f, err := fh.Open()
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40032, "unreadable file")
		return
	}
	defer f.Close()

	actor := middleware.CurrentProfile(ctx)
	key := fmt.Sprintf("avatars/%s/%s%s", actor.ID, uuid.NewString(), filepath.Ext(fh.Filename))
	url, err := a.blobs.Upload(key, f, fh.Header.Get("Content-Type"))
	if err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Errorf("avatar upload failed: %v", err)
		}
		utils.Error(ctx, http.StatusInternalServerError, 50016, "failed to store avatar")
		return
	}

	if err := a.profiles.UpdateFields(actor.ID, map[string]interface{}{"avatar_url": url}); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50017, "failed to update profile")
		return
	}
	utils.Success(ctx, gin.H{"avatar_url": url})
}

// OAuthRedirect starts a social login and hands the authorization URL back.
func (a *AuthController) OAuthRedirect(ctx *gin.Context) {
	provider := ctx.Param("provider")
	cfg, err := oauthConfig(provider)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40004, err.Error())
		return
	}

	state := uuid.NewString()
	utils.SaveState(state, 10*time.Minute)

	url := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
	utils.Success(ctx, gin.H{"authorization_url": url, "state": state})
}

// OAuthCallback exchanges the code, resolves the remote identity, and signs
// the matching profile in, creating it on first login.
func (a *AuthController) OAuthCallback(ctx *gin.Context) {
	provider := ctx.Param("provider")
	code := ctx.Query("code")
	state := ctx.Query("state")

	if code == "" || state == "" {
		utils.Error(ctx, http.StatusBadRequest, 40005, "missing code or state")
		return
	}
	if !utils.ConsumeState(state) {
		utils.Error(ctx, http.StatusBadRequest, 40006, "invalid or expired state")
		return
	}

	cfg, err := oauthConfig(provider)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40004, err.Error())
		return
	}

	token, err := cfg.Exchange(context.Background(), code)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40007, "failed to exchange code")
		return
	}

	identity, err := fetchOAuthIdentity(provider, token)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50005, err.Error())
		return
	}

	profile, err := a.findOrCreateOAuthProfile(provider, identity)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50006, "failed to persist profile")
		return
	}

	jwtToken, err := utils.GenerateToken(profile.ID, tokenLifetime)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50013, "failed to generate token")
		return
	}
	utils.Success(ctx, gin.H{"token": jwtToken, "profile": profile})
}

type oauthIdentity struct {
	ID          string
	Name        string
	DisplayName string
	Email       string
	AvatarURL   string
}

func oauthConfig(provider string) (*oauth2.Config, error) {
	cfg := config.Get()
	switch strings.ToLower(provider) {
	case "github":
		if cfg.GitHubClientID == "" || cfg.GitHubClientSecret == "" {
			return nil, fmt.Errorf("github oauth not configured")
		}
		return &oauth2.Config{
			ClientID:     cfg.GitHubClientID,
			ClientSecret: cfg.GitHubClientSecret,
			RedirectURL:  fmt.Sprintf("%s/api/v1/auth/oauth/github/callback", cfg.OAuthRedirectBase),
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		}, nil
	case "google":
		if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
			return nil, fmt.Errorf("google oauth not configured")
		}
		return &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  fmt.Sprintf("%s/api/v1/auth/oauth/google/callback", cfg.OAuthRedirectBase),
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     google.Endpoint,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

func fetchOAuthIdentity(provider string, token *oauth2.Token) (*oauthIdentity, error) {
	switch strings.ToLower(provider) {
	case "github":
		return fetchGitHubIdentity(token)
	case "google":
		return fetchGoogleIdentity(token)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

func fetchGitHubIdentity(token *oauth2.Token) (*oauthIdentity, error) {
	var payload struct {
		ID        int64  `json:"id"`
		Login     string `json:"login"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := fetchJSON("https://api.github.com/user", token.AccessToken, &payload); err != nil {
		return nil, err
	}
	return &oauthIdentity{
		ID:          strconv.FormatInt(payload.ID, 10),
		Name:        payload.Name,
		DisplayName: payload.Login,
		Email:       payload.Email,
		AvatarURL:   payload.AvatarURL,
	}, nil
}

func fetchGoogleIdentity(token *oauth2.Token) (*oauthIdentity, error) {
	var payload struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := fetchJSON("https://www.googleapis.com/oauth2/v2/userinfo", token.AccessToken, &payload); err != nil {
		return nil, err
	}
	return &oauthIdentity{
		ID:          payload.ID,
		Name:        payload.Name,
		DisplayName: payload.Name,
		Email:       payload.Email,
		AvatarURL:   payload.Picture,
	}, nil
}

func fetchJSON(url, accessToken string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("identity endpoint returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (a *AuthController) findOrCreateOAuthProfile(provider string, identity *oauthIdentity) (*models.Profile, error) {
	profile, err := a.profiles.GetByProvider(provider, identity.ID)
	if err == nil {
		// Refresh mutable identity data on every login.
		updates := map[string]interface{}{
			"email":      strings.ToLower(strings.TrimSpace(identity.Email)),
			"avatar_url": identity.AvatarURL,
		}
		_ = a.profiles.UpdateFields(profile.ID, updates)
		return a.profiles.Get(profile.ID)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(identity.Email))
	profile = &models.Profile{
		ID:          uuid.NewString(),
		Email:       email,
		Provider:    provider,
		ProviderID:  identity.ID,
		Name:        identity.Name,
		DisplayName: utils.Sanitize(identity.DisplayName),
		AvatarURL:   identity.AvatarURL,
		Role:        bootstrapRole(email),
	}
	if err := a.profiles.Create(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func bootstrapRole(email string) string {
	if config.IsAdminEmail(email) {
		return models.RoleAdmin
	}
	return models.RoleUser
}
