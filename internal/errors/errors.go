// errors стандартизирует ответы об ошибках HTTP-слоя.
// На вход он принимает ошибку сервисного слоя (или готовый gRPC-статус),
// а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Промежуточное представление - gRPC codes: сервисные ошибки сначала
// сводятся к коду (Status), затем код маппится в HTTP (baseFromGRPC).
package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/pribylovaa/invest-tips/internal/query"
	"github.com/pribylovaa/invest-tips/internal/service"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// APIError - единый формат ответа об ошибке.
// Code - короткий стабильный код для машиночитаемой обработки на FE.
// Message - безопасное человекочитаемое описание.
// RequestID - прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// Status сводит ошибку к gRPC-статусу.
//
//   - готовый gRPC-статус возвращается как есть;
//   - сентинелы service/query получают свой код и текст сентинела;
//   - отмена и дедлайн контекста - Canceled / DeadlineExceeded;
//   - всё остальное - Internal без деталей.
func Status(err error) *status.Status {
	if err == nil {
		return status.New(codes.Internal, "internal error")
	}

	if st, ok := status.FromError(err); ok {
		return st
	}

	for _, m := range serviceCodes {
		if stderrors.Is(err, m.err) {
			return status.New(m.code, m.err.Error())
		}
	}

	switch {
	case stderrors.Is(err, context.Canceled):
		return status.New(codes.Canceled, "canceled")
	case stderrors.Is(err, context.DeadlineExceeded):
		return status.New(codes.DeadlineExceeded, "deadline exceeded")
	}

	return status.New(codes.Internal, "internal error")
}

var serviceCodes = []struct {
	err  error
	code codes.Code
}{
	{query.ErrInvalidParam, codes.InvalidArgument},
	{service.ErrInvalidArgument, codes.InvalidArgument},
	{service.ErrInvalidEmail, codes.InvalidArgument},
	{service.ErrWeakPassword, codes.InvalidArgument},
	{service.ErrEmptyPassword, codes.InvalidArgument},
	{service.ErrNotFound, codes.NotFound},
	{service.ErrEmailTaken, codes.AlreadyExists},
	{service.ErrAlreadyFavorited, codes.AlreadyExists},
	{service.ErrInvalidCredentials, codes.Unauthenticated},
	{service.ErrTokenExpired, codes.Unauthenticated},
	{service.ErrInvalidToken, codes.Unauthenticated},
}

// ToHTTP конвертирует ошибку в HTTP-статус и унифицированный ответ.
//
// Поведение:
//   - err == nil - это программная ошибка вызова: возвращаем 500/internal,
//     чтобы не послать "200 OK" с телом ошибки и не маскировать баг.
//   - Internal и неизвестные коды отдают "internal error" без деталей.
//   - прочие коды отдают message статуса.
func ToHTTP(err error) (int, APIError) {
	st := Status(err)

	httpStatus, code, msg := baseFromGRPC(st.Code())
	if httpStatus != http.StatusInternalServerError && st.Message() != "" {
		msg = st.Message()
	}

	return httpStatus, APIError{
		Code:    code,
		Message: msg,
	}
}

// WriteError - хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// baseFromGRPC - базовый маппинг gRPC -> HTTP/FE-код/сообщение.
//   - InvalidArgument (битые параметры запроса, id, сортировка) -> 400
//   - NotFound (пустая первая страница, нет идеи/пользователя/отметки) -> 404
//   - AlreadyExists (email занят, идея уже в избранном) -> 409
//   - Unauthenticated (логин, токен) -> 401
//   - PermissionDenied -> 403
//   - Canceled -> 499 (клиент закрыл соединение)
//   - DeadlineExceeded -> 504 (таймаут запроса)
//   - Unavailable -> 503
//   - прочее -> 500/internal
func baseFromGRPC(c codes.Code) (int, string, string) {
	switch c {
	case codes.InvalidArgument:
		return http.StatusBadRequest, "invalid_argument", "invalid argument"
	case codes.NotFound:
		return http.StatusNotFound, "not_found", "not found"
	case codes.AlreadyExists:
		return http.StatusConflict, "already_exists", "already exists"
	case codes.Unauthenticated:
		return http.StatusUnauthorized, "unauthenticated", "unauthenticated"
	case codes.PermissionDenied:
		return http.StatusForbidden, "permission_denied", "permission denied"
	case codes.Canceled:
		return StatusClientClosedRequest, "canceled", "canceled"
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"
	case codes.Unavailable:
		return http.StatusServiceUnavailable, "unavailable", "service unavailable"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}
