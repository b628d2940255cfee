package relax

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

const artworkFields = "id,title,place_of_origin,date_start,date_end,image_id"

// Artwork is one catalog entry with its IIIF image URL resolved.
type Artwork struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	PlaceOfOrigin string `json:"place_of_origin"`
	DateStart     int    `json:"date_start"`
	DateEnd       int    `json:"date_end"`
	ImageURL      string `json:"image_url,omitempty"`
}

type artworkRecord struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	PlaceOfOrigin string `json:"place_of_origin"`
	DateStart     int    `json:"date_start"`
	DateEnd       int    `json:"date_end"`
	ImageID       string `json:"image_id"`
}

type ArtworksClient struct {
	baseURL string
	httpc   *http.Client
}

func NewArtworksClient(baseURL string) *ArtworksClient {
	return &ArtworksClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

// List fetches one catalog page with a fixed field projection.
func (c *ArtworksClient) List(ctx context.Context, limit, page int) ([]Artwork, error) {
	if limit <= 0 {
		limit = 5
	}
	if page <= 0 {
		page = 1
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("page", strconv.Itoa(page))
	q.Set("fields", artworkFields)

	var result struct {
		Data   []artworkRecord `json:"data"`
		Config struct {
			IIIFURL string `json:"iiif_url"`
		} `json:"config"`
	}
	if err := c.get(ctx, c.baseURL+"/artworks?"+q.Encode(), &result); err != nil {
		return nil, err
	}

	artworks := make([]Artwork, 0, len(result.Data))
	for _, rec := range result.Data {
		artworks = append(artworks, rec.artwork(result.Config.IIIFURL))
	}
	return artworks, nil
}

// Details fetches individual artworks by id, at most four upstream calls in
// flight.
func (c *ArtworksClient) Details(ctx context.Context, ids []int) ([]Artwork, error) {
	artworks := make([]Artwork, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			var result struct {
				Data   artworkRecord `json:"data"`
				Config struct {
					IIIFURL string `json:"iiif_url"`
				} `json:"config"`
			}
			endpoint := fmt.Sprintf("%s/artworks/%d?fields=%s", c.baseURL, id, artworkFields)
			if err := c.get(gctx, endpoint, &result); err != nil {
				return err
			}
			artworks[i] = result.Data.artwork(result.Config.IIIFURL)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artworks, nil
}

func (c *ArtworksClient) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("fetch artworks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("fetch artworks: status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode artworks: %w", err)
	}
	return nil
}

func (rec artworkRecord) artwork(iiifURL string) Artwork {
	a := Artwork{
		ID:            rec.ID,
		Title:         rec.Title,
		PlaceOfOrigin: rec.PlaceOfOrigin,
		DateStart:     rec.DateStart,
		DateEnd:       rec.DateEnd,
	}
	if rec.ImageID != "" && iiifURL != "" {
		a.ImageURL = fmt.Sprintf("%s/%s/full/843,/0/default.jpg", strings.TrimRight(iiifURL, "/"), rec.ImageID)
	}
	return a
}
