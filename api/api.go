// SPDX-License-Identifier: MIT

package api

import (
	"context"

	"github.com/pkg/errors"

	"github.com/elevenways/lingo/microcopy"
	"github.com/elevenways/lingo/server"
	"github.com/elevenways/lingo/staticstrings"
	"github.com/elevenways/lingo/storage"
)

// New returns the server.State that wires the i18n HTTP surface.
// Mount it with `server.New(api.New(), "lingo", "/api").ListenAndServe(ctx, cancel)`.
func New() server.State {
	return &state{}
}

func (s *state) Init(ctx context.Context, _ context.CancelFunc) {
	s.db = storage.MustConnect(ctx, storage.NewStringDDL(ddl), applicationYAMLKey)
	s.microcopy = microcopy.New(ctx, applicationYAMLKey, s.db)
	s.staticStrings = staticstrings.New(ctx, applicationYAMLKey, s.db)
}

func (s *state) Close(_ context.Context) error {
	err := s.microcopy.Close()
	s.db.Close()

	return errors.Wrap(err, "failed to close the microcopy client")
}

func (s *state) CheckHealth(ctx context.Context) error {
	return errors.Wrap(s.db.Ping(ctx), "db health check failed")
}

func (s *state) RegisterRoutes(router *server.Router) {
	router.GET("i18n/:domain/:key", server.RootHandler(s.GetTranslation))
	router.GET("i18n/:domain/:key/string", server.RootHandler(s.GetTranslatedString))
	router.GET("api/microcopy/:key", server.RootHandler(s.FindMicrocopyRecords))
}

// GetTranslation godoc
//
//	@Schemes
//	@Description	Returns the full static string record for the domain and key.
//	@Tags			I18n
//	@Produce		json
//	@Param			domain	path		string	true	"the translation domain"
//	@Param			key		path		string	true	"the translation key"
//	@Success		200		{object}	staticstrings.StaticString
//	@Failure		404		{object}	server.ErrorResponse	"if the domain and key are unknown"
//	@Failure		422		{object}	server.ErrorResponse	"if the path params are invalid"
//	@Failure		500		{object}	server.ErrorResponse
//	@Router			/i18n/{domain}/{key} [GET].
func (s *state) GetTranslation(
	ctx context.Context, req *server.Request[GetTranslationArg, staticstrings.StaticString],
) (*server.Response[staticstrings.StaticString], *server.Response[server.ErrorResponse]) {
	str, err := s.staticStrings.GetTranslation(ctx, req.Data.Domain, req.Data.Key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, server.NotFound(err, "TRANSLATION_NOT_FOUND")
		}

		return nil, server.Unexpected(errors.Wrapf(err, "failed to get translation for %#v", req.Data))
	}

	return server.OK(str), nil
}

// GetTranslatedString godoc
//
//	@Schemes
//	@Description	Returns the translated string for the domain and key, formatted with the positional args.
//	@Tags			I18n
//	@Produce		json
//	@Param			domain	path		string		true	"the translation domain"
//	@Param			key		path		string		true	"the translation key"
//	@Param			args	query		[]string	false	"positional args, the first one selects plural when numeric"
//	@Success		200		{object}	TranslatedString
//	@Failure		422		{object}	server.ErrorResponse	"if the path params are invalid"
//	@Failure		500		{object}	server.ErrorResponse
//	@Router			/i18n/{domain}/{key}/string [GET].
func (s *state) GetTranslatedString(
	ctx context.Context, req *server.Request[GetTranslatedStringArg, TranslatedString],
) (*server.Response[TranslatedString], *server.Response[server.ErrorResponse]) {
	translation, err := s.staticStrings.TranslateString(ctx, req.Data.Domain, req.Data.Key, req.Data.Args...)
	if err != nil {
		return nil, server.Unexpected(errors.Wrapf(err, "failed to translate string for %#v", req.Data))
	}

	return server.OK(&TranslatedString{Translation: translation}), nil
}

// FindMicrocopyRecords godoc
//
//	@Schemes
//	@Description	Returns all candidate microcopy records for the key, heaviest first, for client-side resolution.
//	@Tags			Microcopy
//	@Produce		json
//	@Param			access-key	header		string		false	"the configured access key, required without a referer"
//	@Param			key			path		string		true	"the microcopy key"
//	@Param			parameters	query		[]string	false	"the parameter names available at the call site"
//	@Param			locales		query		[]string	false	"the wanted locales, most preferred first"
//	@Success		200			{array}		microcopy.Record
//	@Failure		403			{object}	server.ErrorResponse	"if the access key is missing or wrong"
//	@Failure		422			{object}	server.ErrorResponse	"if the path params are invalid"
//	@Failure		500			{object}	server.ErrorResponse
//	@Router			/api/microcopy/{key} [GET].
func (s *state) FindMicrocopyRecords(
	ctx context.Context, req *server.Request[FindMicrocopyRecordsArg, []*microcopy.Record],
) (*server.Response[[]*microcopy.Record], *server.Response[server.ErrorResponse]) {
	records, err := s.microcopy.FindRecords(ctx, req.Data.Key, req.Data.Parameters, req.Data.Locales)
	if err != nil {
		return nil, server.Unexpected(errors.Wrapf(err, "failed to find microcopy records for %#v", req.Data))
	}
	if records == nil {
		records = make([]*microcopy.Record, 0)
	}

	return server.OK(&records), nil
}
