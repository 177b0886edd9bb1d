package di

import (
	"feedcore/config"
	"feedcore/domain"
	"feedcore/driver/history_db"
	"feedcore/gateway/feed_source_gateway"
	"feedcore/gateway/history_gateway"
	"feedcore/gateway/network_guard_gateway"
	"feedcore/gateway/rate_limiter_gateway"
	"feedcore/gateway/upstream_fetch_gateway"
	"feedcore/job"
	"feedcore/usecase/feed_fetch_usecase"
	"feedcore/usecase/feed_items_usecase"
	"feedcore/usecase/history_read_usecase"
	"feedcore/usecase/history_upsert_usecase"
	"feedcore/usecase/media_proxy_usecase"
	"feedcore/usecase/safe_fetch_usecase"
	"feedcore/utils/rate_limiter"
	"feedcore/utils/security"
)

type ApplicationComponents struct {
	SafeFetchUsecase     *safe_fetch_usecase.SafeFetchUsecase
	FeedFetchUsecase     *feed_fetch_usecase.FeedFetchUsecase
	FeedItemsUsecase     *feed_items_usecase.FeedItemsUsecase
	MediaProxyUsecase    *media_proxy_usecase.MediaProxyUsecase
	HistoryUpsertUsecase *history_upsert_usecase.HistoryUpsertUsecase
	HistoryReadUsecase   *history_read_usecase.HistoryReadUsecase
	HistoryArchiveJob    *job.HistoryArchiveJob
	RateLimiterGateway   *rate_limiter_gateway.RateLimiterGateway
	HistoryDBRepository  *history_db.HistoryDBRepository
}

// NewApplicationComponents wires the application. counters backs the write
// limiter; the caller picks the in-memory or redis implementation.
func NewApplicationComponents(cfg *config.Config, pool history_db.PgxIface, counters rate_limiter.CounterStore) *ApplicationComponents {
	historyDBRepository := history_db.NewHistoryDBRepository(pool)
	feedSourceGatewayImpl := feed_source_gateway.NewFeedSourceGateway(historyDBRepository)
	historyGatewayImpl := history_gateway.NewHistoryGateway(historyDBRepository)

	// Outbound fetch path: guard resolves and pins, the gateway re-checks
	// the address it actually dials.
	guard := security.NewPrivateNetworkGuard(nil, cfg.Fetch.DNSTimeout)
	networkGuardGatewayImpl := network_guard_gateway.NewNetworkGuardGateway(guard)
	upstreamFetchGatewayImpl := upstream_fetch_gateway.NewUpstreamFetchGateway(guard.ValidateConnectionAddress, upstream_fetch_gateway.Options{
		DialTimeout:         cfg.Fetch.DialTimeout,
		TLSHandshakeTimeout: cfg.Fetch.TLSHandshakeTimeout,
		UserAgent:           cfg.Fetch.UserAgent,
	})
	safeFetchUsecase := safe_fetch_usecase.NewSafeFetchUsecase(networkGuardGatewayImpl, upstreamFetchGatewayImpl, cfg.Fetch.MaxRedirects)

	writeLimiter := rate_limiter.NewFixedWindowLimiter(counters, cfg.RateLimit.Ceiling, cfg.RateLimit.Window)
	hostLimiter := rate_limiter.NewHostRateLimiter(cfg.Archive.HostInterval)
	rateLimiterGatewayImpl := rate_limiter_gateway.NewRateLimiterGateway(writeLimiter, hostLimiter)

	feedFetchUsecase := feed_fetch_usecase.NewFeedFetchUsecase(feedSourceGatewayImpl, safeFetchUsecase, cfg.Fetch.FeedTimeout)
	mediaProxyUsecase := media_proxy_usecase.NewMediaProxyUsecase(feedSourceGatewayImpl, safeFetchUsecase, cfg.Fetch.MediaTimeout)
	feedItemsUsecase := feed_items_usecase.NewFeedItemsUsecase(feedSourceGatewayImpl, safeFetchUsecase, historyGatewayImpl, feed_items_usecase.Options{
		Timeout:     cfg.Fetch.FeedTimeout,
		MaxBytes:    cfg.Fetch.FeedMaxBytes,
		Retention:   cfg.History.Retention(),
		DefaultMode: domain.ParseMediaMode(cfg.MediaProxy.DefaultMode, domain.MediaModeProxy),
	})

	historyUpsertUsecase := history_upsert_usecase.NewHistoryUpsertUsecase(
		rateLimiterGatewayImpl,
		feedSourceGatewayImpl,
		historyGatewayImpl,
		cfg.History.Retention(),
		cfg.History.MaxBatchItems,
	)
	historyReadUsecase := history_read_usecase.NewHistoryReadUsecase(feedSourceGatewayImpl, historyGatewayImpl, cfg.History.Retention())

	// Archive writes are server originated and bypass the client write limiter.
	archiveUpsertUsecase := history_upsert_usecase.NewHistoryUpsertUsecase(
		nil,
		feedSourceGatewayImpl,
		historyGatewayImpl,
		cfg.History.Retention(),
		cfg.History.MaxBatchItems,
	)
	historyArchiveJob := job.NewHistoryArchiveJob(feedSourceGatewayImpl, safeFetchUsecase, archiveUpsertUsecase, rateLimiterGatewayImpl, job.ArchiveOptions{
		Concurrency:   cfg.Archive.Concurrency,
		FetchTimeout:  cfg.Fetch.FeedTimeout,
		MaxBytes:      cfg.Fetch.FeedMaxBytes,
		MaxBatchItems: cfg.History.MaxBatchItems,
	})

	return &ApplicationComponents{
		SafeFetchUsecase:     safeFetchUsecase,
		FeedFetchUsecase:     feedFetchUsecase,
		FeedItemsUsecase:     feedItemsUsecase,
		MediaProxyUsecase:    mediaProxyUsecase,
		HistoryUpsertUsecase: historyUpsertUsecase,
		HistoryReadUsecase:   historyReadUsecase,
		HistoryArchiveJob:    historyArchiveJob,
		RateLimiterGateway:   rateLimiterGatewayImpl,
		HistoryDBRepository:  historyDBRepository,
	}
}
