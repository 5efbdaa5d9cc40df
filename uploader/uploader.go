package uploader

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

type GitHubUploadRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
}

type gitHubContent struct {
	SHA string `json:"sha"`
}

// Uploader writes files into a GitHub repository through the contents API.
type Uploader struct {
	APIURL string
	Token  string
	Client *http.Client
}

func New(apiURL, token string) *Uploader {
	return &Uploader{APIURL: strings.TrimSuffix(apiURL, "/"), Token: token, Client: &http.Client{}}
}

// UploadToGitHub creates or replaces repo/path with the contents of filename.
func (u *Uploader) UploadToGitHub(ctx context.Context, repo, path, filename, message string) error {
	fileContent, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("error reading file: %w", err)
	}

	uploadURL := fmt.Sprintf("%s/repos/%s/contents/%s", u.APIURL, repo, strings.TrimPrefix(path, "/"))

	// Replacing an existing file requires its current blob sha.
	sha, err := u.currentSHA(ctx, uploadURL)
	if err != nil {
		return err
	}

	body := GitHubUploadRequest{
		Message: message,
		Content: encodeBase64(fileContent),
		SHA:     sha,
	}
	bodyJSON, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("error marshalling JSON: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewBuffer(bodyJSON))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	u.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := u.Client.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("error uploading to GitHub, status code: %d, response: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

func (u *Uploader) currentSHA(ctx context.Context, contentURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, contentURL, nil)
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	u.setHeaders(req)

	resp, err := u.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", nil
	case resp.StatusCode >= 400:
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("error reading GitHub file, status code: %d, response: %s", resp.StatusCode, string(respBody))
	}

	var content gitHubContent
	if err := json.NewDecoder(resp.Body).Decode(&content); err != nil {
		return "", fmt.Errorf("error decoding GitHub file: %w", err)
	}
	return content.SHA, nil
}

func (u *Uploader) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+u.Token)
	req.Header.Set("Accept", "application/vnd.github+json")
}

func encodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}
