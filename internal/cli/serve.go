package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/starbar/internal/server"
	"github.com/matzehuels/starbar/pkg/cache"
)

// serveOpts holds the flags for the serve command.
type serveOpts struct {
	settings  settingsFlags
	addr      string
	redisAddr string
	redisPass string
	redisDB   int
	namespace string
	maxStars  int
	noCache   bool
}

// serveCommand runs the HTTP badge server.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: defaultAddr, maxStars: server.DefaultMaxStars}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve star badges over HTTP",
		Long: `Serve star badges over HTTP.

Badges are rendered at /stars.svg, /stars.png and /stars.json. Query
parameters override the settings given by --config and the widget flags.
Rendered badges are cached in Redis when --redis is set, otherwise in the
local cache directory.`,
		Example: `  starbar serve --addr :8080 --redis localhost:6379
  curl 'http://localhost:8080/stars.svg?rating=4.3&mode=precise'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := opts.settings.resolve(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			logger := commandLogger(cmd)
			var artifacts cache.Cache
			cacheName := "file"
			if opts.redisAddr != "" && !opts.noCache {
				rc, err := cache.NewRedisCache(ctx, opts.redisAddr, opts.redisPass, opts.redisDB)
				if err != nil {
					return err
				}
				logger.Info("using redis cache", "addr", opts.redisAddr, "db", opts.redisDB)
				artifacts = rc
				cacheName = "redis " + opts.redisAddr
			} else {
				if opts.noCache {
					cacheName = "disabled"
				}
				if artifacts, err = newCache(opts.noCache); err != nil {
					return err
				}
			}

			srv := server.New(server.Config{
				Addr:      opts.addr,
				Settings:  base,
				Cache:     artifacts,
				Namespace: opts.namespace,
				MaxStars:  opts.maxStars,
				Logger:    logger,
			})
			defer srv.Close()

			printInfo("Listening on %s", StyleLink.Render("http://"+displayAddr(opts.addr)+"/stars.svg"))
			printKeyValue("cache", cacheName)
			printKeyValue("max stars", strconv.Itoa(opts.maxStars))
			return srv.Run(ctx)
		},
	}

	opts.settings.register(cmd.Flags())
	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for the badge cache (host:port)")
	cmd.Flags().StringVar(&opts.redisPass, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().StringVar(&opts.namespace, "namespace", "", "cache key namespace")
	cmd.Flags().IntVar(&opts.maxStars, "max-stars", opts.maxStars, "largest total accepted from queries")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable badge caching")

	return cmd
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
