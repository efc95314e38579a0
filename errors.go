package httpc

import (
	httperrors "github.com/frankli0324/go-httpc/internal/errors"
)

// Error is returned by every failed exchange. Match it against the
// sentinels below with [errors.Is].
type Error = httperrors.Error
type ErrorKind = httperrors.Kind

var (
	ErrResolution              = httperrors.ErrResolution
	ErrConnect                 = httperrors.ErrConnect
	ErrHandshake               = httperrors.ErrHandshake
	ErrCertificateVerification = httperrors.ErrCertificateVerification
	ErrSend                    = httperrors.ErrSend
	ErrReceive                 = httperrors.ErrReceive
	ErrReceiveOverflow         = httperrors.ErrReceiveOverflow
	ErrMalformedStatusLine     = httperrors.ErrMalformedStatusLine
	ErrMissingSeparator        = httperrors.ErrMissingSeparator
	ErrMalformedHeaderLine     = httperrors.ErrMalformedHeaderLine
	ErrUnknownDriver           = httperrors.ErrUnknownDriver
	ErrInvalidRequest          = httperrors.ErrInvalidRequest
)
