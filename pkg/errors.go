// Package pkg, projede paylaşılan küçük utility'leri barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// Service katmanı bu sentinel error'ları fmt.Errorf("%w: ...") ile sararak döner,
// handler katmanı errors.Is() ile yakalayıp HTTP status code'una çevirir.
// String karşılaştırması yerine referans karşılaştırması — typo'ya kapalı.
package pkg

import "errors"

// Domain-level error'lar.
// Handler katmanı bu error'ları HTTP status code'larına map'ler (bkz. response.go).
var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadRequest    = errors.New("bad request")
	ErrInternal      = errors.New("internal error")
)
