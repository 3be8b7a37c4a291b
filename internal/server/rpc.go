package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"

	"arcade-leaderboard/internal/domain"
	"arcade-leaderboard/internal/i18n"
	"arcade-leaderboard/internal/metrics"
	"arcade-leaderboard/internal/service"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName          = "leaderboard.v1.LeaderboardService"
	SubmitScoreProcedure = "/" + ServiceName + "/SubmitScore"
	ListScoresProcedure  = "/" + ServiceName + "/ListScores"
)

// JSONCodec lets connect carry plain Go structs instead of generated protobuf messages.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (JSONCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

type SubmitScoreRequest struct {
	Nickname *string  `json:"nickname"`
	Game     *string  `json:"game"`
	Score    *float64 `json:"score"`
}

type SubmitScoreResponse struct {
	Entry domain.Entry `json:"entry"`
}

type ListScoresRequest struct {
	Game  string `json:"game"`
	Limit *int   `json:"limit"`
}

type ListScoresResponse struct {
	Entries []domain.Entry `json:"entries"`
}

func (s *Server) mountRPC(r chi.Router) {
	opts := []connect.HandlerOption{
		connect.WithCodec(JSONCodec{}),
		connect.WithInterceptors(s.rpcLogger()),
	}
	r.Handle(SubmitScoreProcedure, connect.NewUnaryHandler(SubmitScoreProcedure, s.SubmitScore, opts...))
	r.Handle(ListScoresProcedure, connect.NewUnaryHandler(ListScoresProcedure, s.ListScores, opts...))
}

func (s *Server) rpcLogger() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			res, err := next(ctx, req)
			if err != nil {
				zerolog.Ctx(ctx).Warn().
					Str("procedure", req.Spec().Procedure).
					Str("code", connect.CodeOf(err).String()).
					Err(err).
					Msg("rpc failed")
			}
			return res, err
		}
	}
}

func (s *Server) SubmitScore(ctx context.Context, req *connect.Request[SubmitScoreRequest]) (*connect.Response[SubmitScoreResponse], error) {
	if !s.limiter.Allow(peerIP(req.Peer().Addr)) {
		s.metrics.RateLimited.Inc()
		return nil, connect.NewError(connect.CodeResourceExhausted, errors.New(s.rpcMessage(req.Header().Get("Accept-Language"), i18n.MsgRateLimited)))
	}

	in := domain.SubmitInput{
		Nickname: req.Msg.Nickname,
		Game:     req.Msg.Game,
		Score:    req.Msg.Score,
	}
	entry, err := s.svc.Submit(ctx, in)
	if err != nil {
		if verr, ok := domain.IsValidation(err); ok {
			s.metrics.ObserveSubmission(metrics.ResultRejected)
			return nil, s.invalidArgument(req.Header().Get("Accept-Language"), verr)
		}
		s.metrics.ObserveSubmission(metrics.ResultFailed)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.metrics.ObserveSubmission(metrics.ResultAccepted)
	s.metrics.Entries.Set(float64(s.svc.Count()))
	logSubmitted(zerolog.Ctx(ctx), entry)
	return connect.NewResponse(&SubmitScoreResponse{Entry: entry}), nil
}

func (s *Server) ListScores(ctx context.Context, req *connect.Request[ListScoresRequest]) (*connect.Response[ListScoresResponse], error) {
	limit := service.ParseLimit("")
	if req.Msg.Limit != nil {
		limit = service.ClampLimit(*req.Msg.Limit)
	}

	entries, err := s.svc.Query(ctx, req.Msg.Game, limit)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if entries == nil {
		entries = []domain.Entry{}
	}
	return connect.NewResponse(&ListScoresResponse{Entries: entries}), nil
}

func (s *Server) rpcMessage(acceptLanguage, key string) string {
	return i18n.Printer(i18n.FromAcceptLanguage(acceptLanguage)).Sprintf(key)
}

// invalidArgument attaches the translated field errors as a google.protobuf.Struct detail.
func (s *Server) invalidArgument(acceptLanguage string, verr *domain.ValidationError) error {
	p := i18n.Printer(i18n.FromAcceptLanguage(acceptLanguage))
	cerr := connect.NewError(connect.CodeInvalidArgument, errors.New(p.Sprintf(i18n.MsgInvalidInput)))

	fields := make(map[string]any, len(verr.Fields))
	for field, keys := range verr.Fields {
		msgs := make([]any, 0, len(keys))
		for _, m := range i18n.Translate(p, keys) {
			msgs = append(msgs, m)
		}
		fields[field] = msgs
	}

	st, err := structpb.NewStruct(fields)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to encode validation detail")
		return cerr
	}
	detail, err := connect.NewErrorDetail(st)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to wrap validation detail")
		return cerr
	}
	cerr.AddDetail(detail)
	return cerr
}

func peerIP(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
