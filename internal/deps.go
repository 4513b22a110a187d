package internal

import (
	"bitwise74/auth-api/db"
	"bitwise74/auth-api/internal/oauth"
	"bitwise74/auth-api/internal/service"
	"bitwise74/auth-api/pkg/security"
	"fmt"
	"time"

	"github.com/chenyahui/gin-cache/persist"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type Deps struct {
	DB       *gorm.DB
	Signer   *security.Signer
	Sessions *service.Sessions
	Resets   *service.Resets
	OAuth    *service.OAuth
	Public   *service.Public

	// Only configured providers are present
	Providers map[string]oauth.Provider
	Cache     persist.CacheStore

	OAuthSuccessURL string
	SecureCookies   bool

	redis *redis.Client
}

// NewDeps builds every dependency from the loaded configuration
func NewDeps() (*Deps, error) {
	conn, err := db.New(viper.GetString("database.driver"), viper.GetString("database.dsn"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	signer, err := security.NewSigner(security.SignerConfig{
		AccessSecret:  viper.GetString("jwt.access_secret"),
		RefreshSecret: viper.GetString("jwt.refresh_secret"),
		AccessTTL:     viper.GetDuration("jwt.access_ttl"),
		RefreshTTL:    viper.GetDuration("jwt.refresh_ttl"),
	})
	if err != nil {
		db.Close(conn)
		return nil, fmt.Errorf("failed to create token signer, %w", err)
	}

	var mailer service.Mailer = service.LogMailer{}
	if viper.GetString("mail.host") != "" {
		mailer = service.NewSMTPMailer(service.SMTPConfig{
			Host:          viper.GetString("mail.host"),
			Port:          viper.GetInt("mail.port"),
			Username:      viper.GetString("mail.username"),
			Password:      viper.GetString("mail.password"),
			SenderAddress: viper.GetString("mail.sender_address"),
		})
	}

	d := New(conn, signer, mailer)
	d.Providers = providersFromConfig()
	d.OAuthSuccessURL = viper.GetString("oauth.success_url")
	d.SecureCookies = viper.GetBool("host.secure_cookies")

	if viper.GetString("cache.type") == "redis" {
		d.redis = redis.NewClient(&redis.Options{
			Addr: viper.GetString("cache.redis_addr"),
		})
		d.Cache = persist.NewRedisStore(d.redis)
	}

	return d, nil
}

// New wires the services on top of an open database. The cache defaults to
// an in memory store and no OAuth providers are registered.
func New(conn *gorm.DB, signer *security.Signer, mailer service.Mailer) *Deps {
	hasher := security.NewHasher()
	sessions := service.NewSessions(conn, hasher, signer)

	return &Deps{
		DB:        conn,
		Signer:    signer,
		Sessions:  sessions,
		Resets:    service.NewResets(conn, hasher, mailer, nil),
		OAuth:     service.NewOAuth(conn, hasher, sessions),
		Public:    service.NewPublic(conn),
		Providers: map[string]oauth.Provider{},
		Cache:     persist.NewMemoryStore(time.Minute),
	}
}

// Close releases the database and the cache connection
func (d *Deps) Close() error {
	if d.redis != nil {
		d.redis.Close()
	}

	return db.Close(d.DB)
}

func providersFromConfig() map[string]oauth.Provider {
	providers := map[string]oauth.Provider{}

	for name, makeProvider := range map[string]func(oauth.Config) oauth.Provider{
		oauth.ProviderGoogle:   oauth.NewGoogle,
		oauth.ProviderFacebook: oauth.NewFacebook,
	} {
		c := oauth.Config{
			ClientID:     viper.GetString("oauth." + name + ".client_id"),
			ClientSecret: viper.GetString("oauth." + name + ".client_secret"),
			CallbackURL:  viper.GetString("oauth." + name + ".callback_url"),
		}

		if c.ClientID == "" {
			continue
		}

		providers[name] = makeProvider(c)
	}

	return providers
}
