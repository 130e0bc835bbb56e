package treasury

import (
	"context"
	"sort"

	"github.com/mmcdole/gofeed"

	"github.com/Maxwe101/debt-dashboard/pkg/models"
)

const announcementsCacheKey = "announcements"

// FetchAnnouncements fetches upcoming auction announcements from the
// TreasuryDirect RSS feed, newest first. Results are cached briefly since
// the feed updates at most a few times a day.
func (c *Client) FetchAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	if cached, ok := c.cache.Get(announcementsCacheKey); ok {
		return cached.([]models.Announcement), nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	parser := gofeed.NewParser()
	parser.Client = c.client
	feed, err := parser.ParseURLWithContext(c.announcementsURL, ctx)
	if err != nil {
		return nil, err
	}

	anns := make([]models.Announcement, 0, len(feed.Items))
	for _, item := range feed.Items {
		ann := models.Announcement{
			Title: item.Title,
			Link:  item.Link,
		}
		if item.PublishedParsed != nil {
			ann.Published = *item.PublishedParsed
		}
		anns = append(anns, ann)
	}
	sort.Slice(anns, func(i, j int) bool {
		return anns[i].Published.After(anns[j].Published)
	})

	c.cache.Set(announcementsCacheKey, anns)
	return anns, nil
}
