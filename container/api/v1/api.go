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
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nuts-foundation/nuts-siga/asic"
	"github.com/nuts-foundation/nuts-siga/audit"
	"github.com/nuts-foundation/nuts-siga/container"
	"github.com/nuts-foundation/nuts-siga/core"
	"github.com/nuts-foundation/nuts-siga/session"
)

const (
	// ServiceNameHeader is the request header naming the service a container is created for.
	ServiceNameHeader = "X-Service-Name"
	// ServiceUUIDHeader is the request header with the UUID of the service a container is created for.
	ServiceUUIDHeader = "X-Service-UUID"
)

var _ core.ErrorStatusCodeResolver = (*Wrapper)(nil)

// containerPath is the path prefix a container type is addressed under.
type containerPath struct {
	prefix        string
	containerType session.ContainerType
	// name is used in operation IDs, e.g. GetHashcodeContainer.
	name string
}

var containerPaths = []containerPath{
	{prefix: "/hashcodecontainers", containerType: session.Hashcode, name: "Hashcode"},
	{prefix: "/containers", containerType: session.ASiC},
}

// Wrapper exposes the container service over HTTP.
type Wrapper struct {
	Service container.Service
}

func (w *Wrapper) ResolveStatusCode(err error) int {
	return core.ResolveStatusCode(err, map[error]int{
		asic.ErrInvalidContainer:       http.StatusBadRequest,
		asic.ErrDuplicateDataFile:      http.StatusBadRequest,
		session.ErrInvalidSessionData:  http.StatusBadRequest,
		session.ErrSessionNotFound:     http.StatusNotFound,
		container.ErrDataFileNotFound:  http.StatusNotFound,
		container.ErrSignatureNotFound: http.StatusNotFound,
	})
}

func (w *Wrapper) Routes(router core.EchoRouter) {
	router.POST("/hashcodecontainers", w.CreateHashcodeContainer, w.operation("CreateHashcodeContainer"))
	router.POST("/hashcodecontainers/upload", w.UploadHashcodeContainer, w.operation("UploadHashcodeContainer"))
	router.POST("/containers/upload", w.UploadContainer, w.operation("UploadContainer"))
	for _, path := range containerPaths {
		base := path.prefix + "/:containerId"
		op := func(format string) echo.MiddlewareFunc {
			return w.operation(fmt.Sprintf(format, path.name))
		}
		router.GET(base, w.getContainer(path.containerType), op("Get%sContainer"))
		router.DELETE(base, w.deleteContainer(path.containerType), op("Delete%sContainer"))
		router.GET(base+"/datafiles", w.getDataFiles(path.containerType), op("Get%sDataFiles"))
		router.POST(base+"/datafiles", w.addDataFiles(path.containerType), op("Add%sDataFiles"))
		router.DELETE(base+"/datafiles/:datafileName", w.deleteDataFile(path.containerType), op("Delete%sDataFile"))
		router.GET(base+"/signatures", w.getSignatures(path.containerType), op("Get%sSignatures"))
		router.GET(base+"/signatures/:signatureId", w.getSignature(path.containerType), op("Get%sSignature"))
	}
}

// operation sets the information the error handler and audit log need about the operation.
func (w *Wrapper) operation(operationID string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ctx.Set(core.OperationIDContextKey, operationID)
			ctx.Set(core.ModuleNameContextKey, container.ModuleName)
			ctx.Set(core.StatusCodeResolverContextKey, w)
			audit.Middleware(ctx, container.ModuleName, operationID)
			return next(ctx)
		}
	}
}

func (w *Wrapper) CreateHashcodeContainer(ctx echo.Context) error {
	var request CreateHashcodeContainerRequest
	if err := ctx.Bind(&request); err != nil {
		return core.InvalidInputError("invalid request body: %w", err)
	}
	containerID, err := w.Service.CreateHashcodeContainer(ctx.Request().Context(), owner(ctx), toDataFiles(request.DataFiles))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, CreateContainerResponse{ContainerID: containerID})
}

func (w *Wrapper) UploadHashcodeContainer(ctx echo.Context) error {
	var request UploadHashcodeContainerRequest
	if err := ctx.Bind(&request); err != nil {
		return core.InvalidInputError("invalid request body: %w", err)
	}
	if len(request.Container) == 0 {
		return core.InvalidInputError("container is required")
	}
	containerID, err := w.Service.UploadHashcodeContainer(ctx.Request().Context(), owner(ctx), request.Container)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, CreateContainerResponse{ContainerID: containerID})
}

func (w *Wrapper) UploadContainer(ctx echo.Context) error {
	var request UploadContainerRequest
	if err := ctx.Bind(&request); err != nil {
		return core.InvalidInputError("invalid request body: %w", err)
	}
	if request.ContainerName == "" || len(request.Container) == 0 {
		return core.InvalidInputError("containerName and container are required")
	}
	containerID, err := w.Service.UploadASiCContainer(ctx.Request().Context(), owner(ctx), request.ContainerName, request.Container)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, CreateContainerResponse{ContainerID: containerID})
}

func (w *Wrapper) getContainer(containerType session.ContainerType) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		containerID, err := core.PathParameter(ctx, "containerId")
		if err != nil {
			return err
		}
		result, err := w.Service.GetContainer(ctx.Request().Context(), containerType, containerID)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, GetContainerResponse{ContainerName: result.Name, Container: result.Data})
	}
}

func (w *Wrapper) deleteContainer(containerType session.ContainerType) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		containerID, err := core.PathParameter(ctx, "containerId")
		if err != nil {
			return err
		}
		if err = w.Service.DeleteContainer(ctx.Request().Context(), containerType, containerID); err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, ResultResponse{Result: "OK"})
	}
}

func (w *Wrapper) getDataFiles(containerType session.ContainerType) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		containerID, err := core.PathParameter(ctx, "containerId")
		if err != nil {
			return err
		}
		dataFiles, err := w.Service.GetDataFiles(ctx.Request().Context(), containerType, containerID)
		if err != nil {
			return err
		}
		response := DataFilesResponse{DataFiles: make([]DataFile, 0, len(dataFiles))}
		for _, dataFile := range dataFiles {
			response.DataFiles = append(response.DataFiles, fromDataFile(dataFile))
		}
		return ctx.JSON(http.StatusOK, response)
	}
}

func (w *Wrapper) addDataFiles(containerType session.ContainerType) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		containerID, err := core.PathParameter(ctx, "containerId")
		if err != nil {
			return err
		}
		var request DataFilesRequest
		if err := ctx.Bind(&request); err != nil {
			return core.InvalidInputError("invalid request body: %w", err)
		}
		if err = w.Service.AddDataFiles(ctx.Request().Context(), containerType, containerID, toDataFiles(request.DataFiles)); err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, ResultResponse{Result: "OK"})
	}
}

func (w *Wrapper) deleteDataFile(containerType session.ContainerType) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		containerID, name, err := pathParameters(ctx, "datafileName")
		if err != nil {
			return err
		}
		if err = w.Service.DeleteDataFile(ctx.Request().Context(), containerType, containerID, name); err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, ResultResponse{Result: "OK"})
	}
}

func (w *Wrapper) getSignatures(containerType session.ContainerType) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		containerID, err := core.PathParameter(ctx, "containerId")
		if err != nil {
			return err
		}
		signatures, err := w.Service.GetSignatures(ctx.Request().Context(), containerType, containerID)
		if err != nil {
			return err
		}
		response := SignaturesResponse{Signatures: make([]Signature, 0, len(signatures))}
		for _, signature := range signatures {
			response.Signatures = append(response.Signatures, Signature{ID: signature.ID, DataFiles: signature.DataFiles})
		}
		return ctx.JSON(http.StatusOK, response)
	}
}

func (w *Wrapper) getSignature(containerType session.ContainerType) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		containerID, signatureID, err := pathParameters(ctx, "signatureId")
		if err != nil {
			return err
		}
		signature, err := w.Service.GetSignature(ctx.Request().Context(), containerType, containerID, signatureID)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, Signature{
			ID:        signature.ID,
			DataFiles: signature.DataFiles,
			Signature: signature.Content,
		})
	}
}

// owner returns on whose behalf the request creates a container. The client is the authenticated user, or the client IP.
func owner(ctx echo.Context) container.Owner {
	clientName := ctx.RealIP()
	if user, ok := ctx.Get(core.UserContextKey).(string); ok {
		clientName = user
	}
	return container.Owner{
		ClientName:  clientName,
		ServiceName: ctx.Request().Header.Get(ServiceNameHeader),
		ServiceUUID: ctx.Request().Header.Get(ServiceUUIDHeader),
	}
}

func pathParameters(ctx echo.Context, param string) (string, string, error) {
	containerID, err := core.PathParameter(ctx, "containerId")
	if err != nil {
		return "", "", err
	}
	value, err := core.PathParameter(ctx, param)
	if err != nil {
		return "", "", err
	}
	return containerID, value, nil
}
