// Package app wires the HTTP endpoints together
package app

import (
	"bitwise74/auth-api/app/auth"
	"bitwise74/auth-api/app/public"
	"bitwise74/auth-api/app/root"
	"bitwise74/auth-api/internal"
	"bitwise74/auth-api/internal/oauth"
	"bitwise74/auth-api/pkg/middleware"
	"bitwise74/auth-api/pkg/validators"
	"fmt"
	"slices"
	"strings"
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	maxBodySize = 1 << 20
	faqCacheTTL = time.Second * 30
)

var defaultCORSOrigins = []string{"http://localhost:3000"}

func NewRouter(d *internal.Deps) (*gin.Engine, error) {
	if err := validators.Register(); err != nil {
		return nil, fmt.Errorf("failed to register validators, %w", err)
	}

	router := gin.New()

	router.Use(
		corsMiddleware(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
		ginzap.RecoveryWithZap(zap.L(), true),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	refreshGuard := middleware.NewRefreshGuard(d.Signer)

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", root.Heartbeat)
	}

	a := router.Group("/auth", middleware.BodySizeLimiter(maxBodySize))
	{
		// POST /auth/signup		-> Registers a new user and returns a token pair
		a.POST("/signup", func(c *gin.Context) { auth.Signup(c, d) })

		// POST /auth/signin		-> Logs in a user and returns a token pair
		a.POST("/signin", func(c *gin.Context) { auth.Signin(c, d) })

		// POST /auth/refresh		-> Exchanges a refresh token for a new token pair
		a.POST("/refresh", refreshGuard, func(c *gin.Context) { auth.Refresh(c, d) })

		// POST /auth/logout		-> Revokes the current refresh token
		a.POST("/logout", refreshGuard, func(c *gin.Context) { auth.Logout(c, d) })
	}

	r := a.Group("/reset-password")
	{
		// POST /auth/reset-password/send-code		-> Mails a one time reset code
		r.POST("/send-code", func(c *gin.Context) { auth.SendResetCode(c, d) })

		// POST /auth/reset-password/validate-code	-> Checks a reset code
		r.POST("/validate-code", func(c *gin.Context) { auth.ValidateResetCode(c, d) })

		// POST /auth/reset-password/confirm		-> Sets a new password after a validated code
		r.POST("/confirm", func(c *gin.Context) { auth.ConfirmReset(c, d) })
	}

	for _, name := range []string{oauth.ProviderGoogle, oauth.ProviderFacebook} {
		// GET /auth/<provider>			-> Redirects to the provider's consent page
		a.GET("/"+name, func(c *gin.Context) { auth.OAuthStart(c, d, name) })

		// GET /auth/<provider>/redirect	-> Provider callback, redirects to the frontend with a token
		a.GET("/"+name+"/redirect", func(c *gin.Context) { auth.OAuthRedirect(c, d, name) })
	}

	p := router.Group("/public", middleware.BodySizeLimiter(maxBodySize))
	{
		// GET /public/faq		-> Lists every FAQ, newest first
		p.GET("/faq", cache.CacheByRequestURI(d.Cache, faqCacheTTL), func(c *gin.Context) { public.FAQList(c, d) })

		// POST /public/faq		-> Creates a FAQ
		p.POST("/faq", func(c *gin.Context) { public.FAQCreate(c, d) })

		// GET /public/contact-us	-> Lists every contact message, newest first
		p.GET("/contact-us", func(c *gin.Context) { public.ContactList(c, d) })

		// POST /public/contact-us	-> Stores a contact message
		p.POST("/contact-us", func(c *gin.Context) { public.ContactCreate(c, d) })
	}

	return router, nil
}

func corsMiddleware() gin.HandlerFunc {
	origins := corsOrigins()

	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	if slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}

	return cors.New(cfg)
}

// corsOrigins accepts both a list and a comma separated string, the latter
// being what comes in through environment variables
func corsOrigins() []string {
	origins := []string{}

	for _, o := range viper.GetStringSlice("host.cors_origins") {
		for _, part := range strings.Split(o, ",") {
			if part = strings.TrimSpace(part); part != "" {
				origins = append(origins, part)
			}
		}
	}

	if len(origins) == 0 {
		return defaultCORSOrigins
	}

	return origins
}
