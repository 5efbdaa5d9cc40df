package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"miniscraper/uploader"
)

func newPublishCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload the bank (or another file) to the configured GitHub repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gh := a.cfg.GitHub
			if gh.Token == "" || gh.Repo == "" {
				return errors.New("github.token and github.repo must be set")
			}
			if file == "" {
				file = a.cfg.BankPath
			}

			u := uploader.New(gh.APIURL, gh.Token)
			if err := u.UploadToGitHub(cmd.Context(), gh.Repo, gh.Path, file, gh.Message); err != nil {
				return err
			}
			a.log.Info("Uploaded to GitHub", zap.String("repo", gh.Repo), zap.String("path", gh.Path), zap.String("file", file))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "file to upload (default: the bank)")
	return cmd
}
