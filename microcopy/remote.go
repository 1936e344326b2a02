// SPDX-License-Identifier: MIT

package microcopy

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	stdlibtime "time"

	"github.com/goccy/go-json"
	"github.com/imroc/req/v3"
	"github.com/pkg/errors"

	"github.com/elevenways/lingo/log"
)

type translationServer struct {
	client      *req.Client
	urlTemplate string
	accessKey   string
}

func newTranslationServer(urlTemplate, accessKey string, timeout stdlibtime.Duration) *translationServer {
	client := req.C().
		SetJsonMarshal(json.Marshal).
		SetJsonUnmarshal(json.Unmarshal).
		SetTimeout(timeout)

	return &translationServer{client: client, urlTemplate: urlTemplate, accessKey: accessKey}
}

func (t *translationServer) fetchRecords(ctx context.Context, key string, parameterNames []string, locales []Language) ([]*Record, error) {
	resp, err := t.buildHTTPRequest(ctx).
		AddQueryParams("parameters", parameterNames...).
		AddQueryParams("locales", locales...).
		Get(strings.ReplaceAll(t.urlTemplate, "{key}", url.PathEscape(key)))
	if err != nil {
		return nil, errors.Wrapf(ErrRemoteFetch, "get %q failed: %v", key, err)
	}
	if resp.IsErrorState() {
		body, _ := resp.ToString()

		return nil, errors.Wrapf(ErrRemoteFetch, "get %q failed with status %v, response: %v", key, resp.GetStatusCode(), body)
	}
	if contentType := resp.Header.Get("Content-Type"); !strings.Contains(contentType, "json") {
		return nil, errors.Wrapf(ErrRemoteFetch, "the response for %q was not a JSON string, content-type: %v", key, contentType)
	}
	body, err := resp.ToBytes()
	if err != nil {
		return nil, errors.Wrapf(ErrRemoteFetch, "unable to read the response body for %q: %v", key, err)
	}
	var records []*Record
	if err = json.UnmarshalContext(ctx, body, &records); err != nil {
		return nil, errors.Wrapf(ErrRemoteFetch, "failed to json.unmarshal remote records for %q, data: %v: %v", key, string(body), err)
	}

	return records, nil
}

//nolint:mnd,gomnd // Static config.
func (t *translationServer) buildHTTPRequest(ctx context.Context) *req.Request {
	return t.client.R().
		SetContext(ctx).
		SetRetryBackoffInterval(10*stdlibtime.Millisecond, 1*stdlibtime.Second).
		SetRetryHook(func(resp *req.Response, err error) {
			switch { //nolint:revive // .
			case err != nil:
				log.Error(errors.Wrap(err, "remote translation server request failed, retrying... "))
			case resp.GetStatusCode() == http.StatusTooManyRequests:
				log.Error(errors.New("rate limit for remote translation server reached, retrying... "))
			case resp.GetStatusCode() >= http.StatusInternalServerError:
				log.Error(errors.New("remote translation server request failed[internal server error], retrying... "))
			}
		}).
		SetRetryCount(2).
		SetRetryCondition(func(resp *req.Response, err error) bool {
			return err != nil || resp.GetStatusCode() == http.StatusTooManyRequests || resp.GetStatusCode() >= http.StatusInternalServerError
		}).
		SetHeader("Accept", "application/json").
		SetHeader("access-key", t.accessKey)
}
