package collector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/errgroup"

	"github.com/FellowDalton/foodplan-ingest/internal/domain/dto"
	"github.com/FellowDalton/foodplan-ingest/internal/pkg/config"
	"github.com/FellowDalton/foodplan-ingest/internal/pkg/logger"
)

const (
	defaultViewerBaseURL = "https://publication-viewer.tjek.com"
	defaultOfferBaseURL  = "https://squid-api.tjek.com"
	defaultPageCount     = 40
	maxConcurrentOffers  = 8
)

// Collector fetches one store publication from the tjek feed pair: the
// paged viewer lists hotspot offer ids, the squid API serves offer details.
// It produces raw datasets only; normalization happens downstream.
type Collector struct {
	client        *http.Client
	ViewerBaseURL string
	OfferBaseURL  string
}

func New() *Collector {
	return &Collector{
		client:        &http.Client{Timeout: 30 * time.Second},
		ViewerBaseURL: defaultViewerBaseURL,
		OfferBaseURL:  defaultOfferBaseURL,
	}
}

type hotspotPage struct {
	Hotspots []struct {
		Offer struct {
			ID string `json:"id"`
		} `json:"offer"`
	} `json:"hotspots"`
}

type offerResponse struct {
	Heading     string `json:"heading"`
	Description string `json:"description"`
	Pricing     struct {
		Price *float64 `json:"price"`
	} `json:"pricing"`
}

// CollectPublication walks every page of the publication, then fetches the
// referenced offers concurrently. A page or offer that keeps failing is
// logged and skipped; only context cancellation aborts the whole collect.
func (c *Collector) CollectPublication(ctx context.Context, feed config.FeedConfig) (*dto.StoreDataset, error) {
	pageCount := feed.PageCount
	if pageCount <= 0 {
		pageCount = defaultPageCount
	}

	offerIDs := make([]string, 0, pageCount*8)
	for page := 1; page <= pageCount; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		url := fmt.Sprintf("%s/api/paged-publications/%s/%d", c.ViewerBaseURL, feed.PublicationID, page)

		var hp hotspotPage
		if err := c.fetchJSON(ctx, url, &hp); err != nil {
			logger.Warnf(ctx, "fetch page %d of publication %s: %s", page, feed.PublicationID, err.Error())
			continue
		}

		for _, h := range hp.Hotspots {
			if h.Offer.ID != "" {
				offerIDs = append(offerIDs, h.Offer.ID)
			}
		}
	}

	logger.Infof(ctx, "publication %s: %d offers on %d pages", feed.PublicationID, len(offerIDs), pageCount)

	offers := make([]*dto.RawOffer, len(offerIDs))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrentOffers)
	for i, offerID := range offerIDs {
		i, offerID := i, offerID
		eg.Go(func() error {
			url := fmt.Sprintf("%s/v2/offers/%s", c.OfferBaseURL, offerID)

			var resp offerResponse
			if err := c.fetchJSON(egCtx, url, &resp); err != nil {
				// A dead feed entry is skipped; a canceled collect must
				// not pass off a truncated dataset as complete.
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				logger.Warnf(egCtx, "fetch offer %s: %s", offerID, err.Error())
				return nil
			}

			offers[i] = &dto.RawOffer{
				Heading:     resp.Heading,
				Description: resp.Description,
				Price:       resp.Pricing.Price,
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("err in goroutine: %w", err)
	}

	ds := &dto.StoreDataset{
		StoreName: feed.StoreName,
		ScrapedAt: time.Now().UTC(),
	}
	for _, offer := range offers {
		if offer != nil {
			ds.Offers = append(ds.Offers, *offer)
		}
	}

	return ds, nil
}

func (c *Collector) fetchJSON(ctx context.Context, url string, dst any) error {
	return backoff.Retry(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return backoff.Permanent(err)
			}

			resp, err := c.client.Do(req)
			if err != nil {
				return fmt.Errorf("http.Get: %w", err)
			}
			defer func() {
				_ = resp.Body.Close()
			}()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status)
			}

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("read body: %w", err)
			}

			if err := sonic.Unmarshal(body, dst); err != nil {
				return backoff.Permanent(fmt.Errorf("unmarshal %s: %w", url, err))
			}

			return nil
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(100*time.Millisecond), 5),
			ctx,
		),
	)
}
