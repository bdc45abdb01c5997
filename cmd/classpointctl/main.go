// classpointctl is a small operator console for the school-management API:
// it signs requests with the session from the environment and prints pending
// organizations and staff with their active groups.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/classpoint/classpoint-go/announcements"
	"github.com/classpoint/classpoint-go/auth"
	"github.com/classpoint/classpoint-go/format"
	"github.com/classpoint/classpoint-go/httpclient"
	"github.com/classpoint/classpoint-go/internal/config"
	"github.com/classpoint/classpoint-go/organizations"
	"github.com/classpoint/classpoint-go/session"
	"github.com/classpoint/classpoint-go/staff"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("classpointctl failed")
	}
}

func run() error {
	c := config.New()
	displayAppname(c.GetAppName())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, c.GetRequestTimeout())
	defer cancel()

	cache, err := session.NewCache(envSource(), session.WithTTL(c.GetSessionCacheTTL()))
	if err != nil {
		return fmt.Errorf("session.NewCache: %w", err)
	}

	refresher, err := auth.NewOIDCRefresher(c.GetIssuerURL(), c.GetClientID(), c.GetClientSecret(), session.SourceFunc(cache.Get))
	if err != nil {
		return fmt.Errorf("auth.NewOIDCRefresher: %w", err)
	}

	handler, err := auth.NewFailureHandler(auth.EnvironmentHeadless, cache, refresher, auth.NewMemoryMarkerStore(),
		auth.WithDebounceWindow(c.GetRefreshDebounceWindow()))
	if err != nil {
		return fmt.Errorf("auth.NewFailureHandler: %w", err)
	}

	api, err := httpclient.New(c.GetAPIBaseURL(), cache, handler)
	if err != nil {
		return fmt.Errorf("httpclient.New: %w", err)
	}

	if err := printPendingOrganizations(ctx, api); err != nil {
		return err
	}
	if err := printStaffWithGroups(ctx, api); err != nil {
		return err
	}
	return printAnnouncements(ctx, api)
}

// envSource serves the token bundle from the environment. The CLI has no
// identity-provider round trip of its own; operators paste a session in.
func envSource() session.Source {
	return session.SourceFunc(func(ctx context.Context) (*session.Session, error) {
		s := &session.Session{
			AccessToken:  os.Getenv("ACCESS_TOKEN"),
			RefreshToken: os.Getenv("REFRESH_TOKEN"),
		}
		if expiry, err := session.ExpiryFromAccessToken(s.AccessToken); err == nil {
			s.Expiry = expiry
		}
		return s, nil
	})
}

func printPendingOrganizations(ctx context.Context, api *httpclient.Client) error {
	orgClient, err := organizations.NewClient(api)
	if err != nil {
		return err
	}

	orgs, err := orgClient.List(ctx, organizations.StatusPending)
	if err != nil {
		return fmt.Errorf("list pending organizations: %w", err)
	}

	fmt.Printf("Pending organizations (%d)\n", len(orgs))
	now := time.Now()
	for _, org := range orgs {
		fmt.Printf("  %-4s %-30s %-25s %s\n",
			format.Initials(org.Name), format.Truncate(org.Name, 30), org.ContactEmail,
			format.RelativeTime(org.CreatedAt, now))
	}
	return nil
}

// printStaffWithGroups lists staff, fetching each member's active groups
// concurrently.
func printStaffWithGroups(ctx context.Context, api *httpclient.Client) error {
	staffClient, err := staff.NewClient(api)
	if err != nil {
		return err
	}

	members, err := staffClient.List(ctx)
	if err != nil {
		return fmt.Errorf("list staff: %w", err)
	}

	groupsByStaff := make([][]staff.Group, len(members))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, member := range members {
		i, member := i, member // per-iteration copies; go directive predates Go 1.22 loop semantics
		g.Go(func() error {
			groups, err := staffClient.ActiveGroups(gctx, member.ID)
			if err != nil {
				return fmt.Errorf("groups for %s: %w", member.ID, err)
			}
			groupsByStaff[i] = groups
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("\nStaff (%d)\n", len(members))
	for i, member := range members {
		fmt.Printf("  %-4s %-28s %-10s %d active group(s)\n",
			format.Initials(member.FullName), format.Truncate(member.FullName, 28),
			member.Role, len(groupsByStaff[i]))
		for _, group := range groupsByStaff[i] {
			fmt.Printf("       - %s (%d students)\n", group.Name, group.MemberCount)
		}
	}
	return nil
}

func printAnnouncements(ctx context.Context, api *httpclient.Client) error {
	annClient, err := announcements.NewClient(api)
	if err != nil {
		return err
	}

	latest, err := annClient.List(ctx, 5)
	if err != nil {
		return fmt.Errorf("list announcements: %w", err)
	}

	fmt.Printf("\nLatest announcements (%d)\n", len(latest))
	now := time.Now()
	for _, a := range latest {
		fmt.Printf("  %-40s %-10s %s\n",
			format.Truncate(a.Title, 40), a.Audience, format.RelativeTime(a.CreatedAt, now))
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
