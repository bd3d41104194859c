/*
 * Copyright (C) 2024 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nuts-foundation/nuts-siga/audit"
	"github.com/nuts-foundation/nuts-siga/core"
	"github.com/nuts-foundation/nuts-siga/mobileid"
	"github.com/nuts-foundation/nuts-siga/session"
	"github.com/nuts-foundation/nuts-siga/signing"
	"github.com/nuts-foundation/nuts-siga/smartid"
)

var _ core.ErrorStatusCodeResolver = (*Wrapper)(nil)

// containerPaths are the path prefixes of HASHCODE and ASIC containers. Signing works the same for both.
var containerPaths = []string{"/hashcodecontainers", "/containers"}

// Wrapper exposes the signing service over HTTP.
type Wrapper struct {
	Service signing.Service
}

func (w *Wrapper) ResolveStatusCode(err error) int {
	return core.ResolveStatusCode(err, map[error]int{
		session.ErrInvalidSessionData:   http.StatusBadRequest,
		session.ErrSessionNotFound:      http.StatusNotFound,
		mobileid.ErrInvalidLanguage:     http.StatusBadRequest,
		mobileid.ErrCertificateNotFound: http.StatusBadRequest,
		smartid.ErrUserAccountNotFound:  http.StatusBadRequest,
		mobileid.ErrClient:              http.StatusBadGateway,
		smartid.ErrClient:               http.StatusBadGateway,
	})
}

func (w *Wrapper) Routes(router core.EchoRouter) {
	for _, prefix := range containerPaths {
		base := prefix + "/:containerId"
		router.POST(base+"/remotesigning", w.CreateRemoteSigning, w.operation("CreateRemoteSigning"))
		router.PUT(base+"/remotesigning/:signatureId", w.FinalizeRemoteSigning, w.operation("FinalizeRemoteSigning"))
		router.POST(base+"/mobileidsigning", w.StartMobileIDSigning, w.operation("StartMobileIDSigning"))
		router.GET(base+"/mobileidsigning/:signatureId/status", w.GetMobileIDSigningStatus, w.operation("GetMobileIDSigningStatus"))
		router.POST(base+"/smartidsigning/certificatechoice", w.StartSmartIDCertificateChoice, w.operation("StartSmartIDCertificateChoice"))
		router.GET(base+"/smartidsigning/certificatechoice/:certificateId/status", w.GetSmartIDCertificateStatus, w.operation("GetSmartIDCertificateStatus"))
		router.POST(base+"/smartidsigning", w.StartSmartIDSigning, w.operation("StartSmartIDSigning"))
		router.GET(base+"/smartidsigning/:signatureId/status", w.GetSmartIDSigningStatus, w.operation("GetSmartIDSigningStatus"))
	}
}

// operation sets the information the error handler and audit log need about the operation.
func (w *Wrapper) operation(operationID string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ctx.Set(core.OperationIDContextKey, operationID)
			ctx.Set(core.ModuleNameContextKey, signing.ModuleName)
			ctx.Set(core.StatusCodeResolverContextKey, w)
			audit.Middleware(ctx, signing.ModuleName, operationID)
			return next(ctx)
		}
	}
}

func (w *Wrapper) CreateRemoteSigning(ctx echo.Context) error {
	containerID, err := core.PathParameter(ctx, "containerId")
	if err != nil {
		return err
	}
	var request RemoteSigningRequest
	if err := ctx.Bind(&request); err != nil {
		return core.InvalidInputError("invalid request body: %w", err)
	}
	response, err := w.Service.CreateDataToSign(ctx.Request().Context(), containerID, signing.RemoteSigningRequest{
		SignatureOptions: signing.SignatureOptions{
			Roles:                    request.Roles,
			SignatureProductionPlace: request.SignatureProductionPlace,
		},
		SigningCertificate: request.SigningCertificate,
		DigestAlgorithm:    request.DigestAlgorithm,
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, RemoteSigningResponse{
		GeneratedSignatureID: response.SignatureID,
		DataToSign:           response.DataToSign,
		DigestAlgorithm:      response.DigestAlgorithm,
	})
}

func (w *Wrapper) FinalizeRemoteSigning(ctx echo.Context) error {
	containerID, signatureID, err := pathParameters(ctx, "signatureId")
	if err != nil {
		return err
	}
	var request FinalizeRemoteSigningRequest
	if err := ctx.Bind(&request); err != nil {
		return core.InvalidInputError("invalid request body: %w", err)
	}
	if len(request.SignatureValue) == 0 {
		return core.InvalidInputError("signatureValue is required")
	}
	if err = w.Service.FinalizeSigning(ctx.Request().Context(), containerID, signatureID, request.SignatureValue); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ResultResponse{Result: "OK"})
}

func (w *Wrapper) StartMobileIDSigning(ctx echo.Context) error {
	containerID, err := core.PathParameter(ctx, "containerId")
	if err != nil {
		return err
	}
	var request MobileIDSigningRequest
	if err := ctx.Bind(&request); err != nil {
		return core.InvalidInputError("invalid request body: %w", err)
	}
	if request.PhoneNo == "" || request.PersonIdentifier == "" {
		return core.InvalidInputError("phoneNo and personIdentifier are required")
	}
	challenge, err := w.Service.StartMobileIDSigning(ctx.Request().Context(), containerID, signing.MobileIDSigningRequest{
		SignatureOptions: signing.SignatureOptions{
			Roles:                    request.Roles,
			SignatureProductionPlace: request.SignatureProductionPlace,
		},
		PhoneNumber:      request.PhoneNo,
		PersonIdentifier: request.PersonIdentifier,
		Language:         request.Language,
		MessageToDisplay: request.MessageToDisplay,
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SigningChallengeResponse{
		GeneratedSignatureID: challenge.SignatureID,
		ChallengeID:          challenge.ChallengeID,
	})
}

func (w *Wrapper) GetMobileIDSigningStatus(ctx echo.Context) error {
	containerID, signatureID, err := pathParameters(ctx, "signatureId")
	if err != nil {
		return err
	}
	status, err := w.Service.GetMobileIDSigningStatus(ctx.Request().Context(), containerID, signatureID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, MobileIDSigningStatusResponse{MidStatus: status.Status, Error: status.Error})
}

func (w *Wrapper) StartSmartIDCertificateChoice(ctx echo.Context) error {
	containerID, err := core.PathParameter(ctx, "containerId")
	if err != nil {
		return err
	}
	var request SmartIDCertificateChoiceRequest
	if err := ctx.Bind(&request); err != nil {
		return core.InvalidInputError("invalid request body: %w", err)
	}
	certificateID, err := w.Service.StartSmartIDCertificateChoice(ctx.Request().Context(), containerID, signing.SmartIDCertificateRequest{
		Country:          request.Country,
		PersonIdentifier: request.PersonIdentifier,
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SmartIDCertificateChoiceResponse{GeneratedCertificateID: certificateID})
}

func (w *Wrapper) GetSmartIDCertificateStatus(ctx echo.Context) error {
	containerID, certificateID, err := pathParameters(ctx, "certificateId")
	if err != nil {
		return err
	}
	status, err := w.Service.GetSmartIDCertificateStatus(ctx.Request().Context(), containerID, certificateID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SmartIDCertificateChoiceStatusResponse{
		SidStatus:      status.Status.Status,
		DocumentNumber: status.DocumentNumber,
		Error:          status.Status.Error,
	})
}

func (w *Wrapper) StartSmartIDSigning(ctx echo.Context) error {
	containerID, err := core.PathParameter(ctx, "containerId")
	if err != nil {
		return err
	}
	var request SmartIDSigningRequest
	if err := ctx.Bind(&request); err != nil {
		return core.InvalidInputError("invalid request body: %w", err)
	}
	if request.DocumentNumber == "" {
		return core.InvalidInputError("documentNumber is required")
	}
	challenge, err := w.Service.StartSmartIDSigning(ctx.Request().Context(), containerID, signing.SmartIDSigningRequest{
		SignatureOptions: signing.SignatureOptions{
			Roles:                    request.Roles,
			SignatureProductionPlace: request.SignatureProductionPlace,
		},
		DocumentNumber:   request.DocumentNumber,
		MessageToDisplay: request.MessageToDisplay,
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SigningChallengeResponse{
		GeneratedSignatureID: challenge.SignatureID,
		ChallengeID:          challenge.ChallengeID,
	})
}

func (w *Wrapper) GetSmartIDSigningStatus(ctx echo.Context) error {
	containerID, signatureID, err := pathParameters(ctx, "signatureId")
	if err != nil {
		return err
	}
	status, err := w.Service.GetSmartIDSigningStatus(ctx.Request().Context(), containerID, signatureID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SmartIDSigningStatusResponse{SidStatus: status.Status, Error: status.Error})
}

// pathParameters returns the container ID and the ID of the sub-session named by param.
func pathParameters(ctx echo.Context, param string) (string, string, error) {
	containerID, err := core.PathParameter(ctx, "containerId")
	if err != nil {
		return "", "", err
	}
	id, err := core.PathParameter(ctx, param)
	if err != nil {
		return "", "", err
	}
	return containerID, id, nil
}
