package main

import (
	"time"

	"go.uber.org/zap"

	"printfind/internal/aggregator"
	"printfind/internal/browser"
	"printfind/internal/config"
	"printfind/internal/fetcher"
	"printfind/internal/scraper"
)

// pipeline is the fetcher, adapters and aggregator built from one config.
type pipeline struct {
	agg     *aggregator.Aggregator
	fetcher fetcher.Fetcher
}

func newPipeline(cfg *config.Config) *pipeline {
	f := newFetcher(cfg)
	adapters := scraper.Adapters(scraper.Sites(cfg.EnabledSources()...), f)
	agg := aggregator.New(aggregator.Config{
		PerSourceLimit: cfg.Search.PerSourceLimit,
		MaxResults:     cfg.Search.MaxResults,
	}, adapters...)
	return &pipeline{agg: agg, fetcher: f}
}

func newFetcher(cfg *config.Config) fetcher.Fetcher {
	fetchTimeout := time.Duration(cfg.Fetch.TimeoutSecs) * time.Second
	if cfg.Fetch.Render {
		return fetcher.NewBrowserFetcher(browser.Config{
			ProxyURL: cfg.Fetch.ProxyURL,
			Headless: !showUI,
		}, cfg.Fetch.UserAgent, fetchTimeout)
	}
	return fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:     cfg.Fetch.UserAgent,
		Timeout:       fetchTimeout,
		MaxBodyBytes:  cfg.Fetch.MaxBodyBytes,
		RatePerSecond: cfg.Fetch.RatePerSecond,
	})
}

// Close releases the browser if one was launched.
func (p *pipeline) Close() {
	c, ok := p.fetcher.(interface{ Close() error })
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		zap.L().Warn("close fetcher", zap.Error(err))
	}
}
