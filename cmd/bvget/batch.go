package main

import (
	"context"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/famomatic/bvget/client"
)

// runBatch downloads each id in order. A failure is logged and recorded and
// the remaining ids still run. Returns the ids that failed.
func runBatch(ctx context.Context, c *client.Client, ids []string, selectQuality bool, log *logrus.Logger) []string {
	var failed []string
	for _, id := range ids {
		if err := downloadOne(ctx, c, id, selectQuality); err != nil {
			log.Errorf("download %s: %v", id, err)
			failed = append(failed, id)
		}
	}
	return failed
}

func downloadOne(ctx context.Context, c *client.Client, id string, selectQuality bool) error {
	if !selectQuality {
		_, err := c.Download(ctx, id, client.DownloadOptions{})
		return err
	}

	info, err := c.GetVideo(ctx, id)
	if err != nil {
		return err
	}
	qualityID, err := promptQuality(info)
	if err != nil {
		return err
	}
	_, err = c.DownloadVideo(ctx, info, client.DownloadOptions{QualityID: qualityID})
	return err
}

func promptQuality(info *client.VideoInfo) (int, error) {
	labels := lo.Map(info.Qualities, func(q client.Quality, _ int) string {
		return fmt.Sprintf("%s (%d)", q.Label, q.ID)
	})
	var idx int
	prompt := &survey.Select{
		Message: fmt.Sprintf("Quality for %q:", info.Title),
		Options: labels,
	}
	if err := survey.AskOne(prompt, &idx); err != nil {
		return 0, err
	}
	return info.Qualities[idx].ID, nil
}
