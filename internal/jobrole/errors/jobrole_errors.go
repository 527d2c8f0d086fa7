package jobroleerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrInvalidJobRoleID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid job role id",
		http.StatusBadRequest,
	)
	ErrJobRoleNotFound = apperror.New(
		apperror.CodeNotFound,
		"job role not found",
		http.StatusNotFound,
	)
	ErrJobRoleAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"job role with this title already exists",
		http.StatusConflict,
	)
)
