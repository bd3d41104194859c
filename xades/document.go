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

package xades

import (
	"bytes"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"net/url"
	"time"

	"github.com/nuts-foundation/nuts-siga/asic"
	"github.com/nuts-foundation/nuts-siga/session"
)

const (
	dsNamespace          = "http://www.w3.org/2000/09/xmldsig#"
	xadesNamespace       = "http://uri.etsi.org/01903/v1.3.2#"
	asicNamespace        = "http://uri.etsi.org/02918/v1.2.1#"
	canonicalization     = "http://www.w3.org/2006/12/xml-c14n11"
	signedPropertiesType = "http://uri.etsi.org/01903#SignedProperties"
	signingTimeFormat    = "2006-01-02T15:04:05Z"
)

// documentWriter writes XML in canonical form: explicit end tags, namespaces declared on the fragment root.
// The signed fragments are hashed as written, so they must not be re-serialized.
type documentWriter struct {
	buf bytes.Buffer
}

func (w *documentWriter) start(name string, attrs ...string) {
	w.buf.WriteString("<" + name)
	for i := 0; i+1 < len(attrs); i += 2 {
		w.buf.WriteString(" " + attrs[i] + "=\"")
		_ = xml.EscapeText(&w.buf, []byte(attrs[i+1]))
		w.buf.WriteString("\"")
	}
	w.buf.WriteString(">")
}

func (w *documentWriter) end(name string) {
	w.buf.WriteString("</" + name + ">")
}

func (w *documentWriter) element(name string, text string, attrs ...string) {
	w.start(name, attrs...)
	_ = xml.EscapeText(&w.buf, []byte(text))
	w.end(name)
}

func (w *documentWriter) raw(data []byte) {
	w.buf.Write(data)
}

func (w *documentWriter) bytes() []byte {
	return w.buf.Bytes()
}

func (w *documentWriter) digest(algorithm digestAlgorithm, value string) {
	w.element("ds:DigestMethod", "", "Algorithm", algorithm.uri)
	w.element("ds:DigestValue", value)
}

func signedPropertiesID(signatureID string) string {
	return "xades-" + signatureID
}

func referenceID(signatureID string, index int) string {
	return fmt.Sprintf("r-%s-%d", signatureID, index+1)
}

func buildSignedProperties(signatureID string, signingTime time.Time, certificate *x509.Certificate, params session.SignatureParameters, dataFiles []asic.DataFile, algorithm digestAlgorithm) []byte {
	w := &documentWriter{}
	w.start("xades:SignedProperties", "xmlns:ds", dsNamespace, "xmlns:xades", xadesNamespace, "Id", signedPropertiesID(signatureID))
	w.start("xades:SignedSignatureProperties")
	w.element("xades:SigningTime", signingTime.UTC().Format(signingTimeFormat))

	w.start("xades:SigningCertificateV2")
	w.start("xades:Cert")
	w.start("xades:CertDigest")
	w.digest(algorithm, base64.StdEncoding.EncodeToString(algorithm.digest(certificate.Raw)))
	w.end("xades:CertDigest")
	w.end("xades:Cert")
	w.end("xades:SigningCertificateV2")

	if params.City != "" || params.StateOrProvince != "" || params.PostalCode != "" || params.CountryName != "" {
		w.start("xades:SignatureProductionPlaceV2")
		for _, field := range [][2]string{
			{"xades:City", params.City},
			{"xades:StateOrProvince", params.StateOrProvince},
			{"xades:PostalCode", params.PostalCode},
			{"xades:CountryName", params.CountryName},
		} {
			if field[1] != "" {
				w.element(field[0], field[1])
			}
		}
		w.end("xades:SignatureProductionPlaceV2")
	}
	if len(params.Roles) > 0 {
		w.start("xades:SignerRoleV2")
		w.start("xades:ClaimedRoles")
		for _, role := range params.Roles {
			w.element("xades:ClaimedRole", role)
		}
		w.end("xades:ClaimedRoles")
		w.end("xades:SignerRoleV2")
	}
	w.end("xades:SignedSignatureProperties")

	w.start("xades:SignedDataObjectProperties")
	for i, dataFile := range dataFiles {
		mimeType := dataFile.MimeType
		if mimeType == "" {
			mimeType = asic.DefaultDataFileMimeType
		}
		w.start("xades:DataObjectFormat", "ObjectReference", "#"+referenceID(signatureID, i))
		w.element("xades:MimeType", mimeType)
		w.end("xades:DataObjectFormat")
	}
	w.end("xades:SignedDataObjectProperties")
	w.end("xades:SignedProperties")
	return w.bytes()
}

func buildSignedInfo(signatureID string, signatureMethod string, dataFiles []asic.DataFile, signedProperties []byte, algorithm digestAlgorithm) ([]byte, error) {
	w := &documentWriter{}
	w.start("ds:SignedInfo", "xmlns:ds", dsNamespace)
	w.element("ds:CanonicalizationMethod", "", "Algorithm", canonicalization)
	w.element("ds:SignatureMethod", "", "Algorithm", signatureMethod)
	for i, dataFile := range dataFiles {
		digest := dataFile.Sha256
		if algorithm.hash.Size() != sha256.Size {
			digest = dataFile.Sha512
		}
		if digest == "" {
			return nil, fmt.Errorf("data file '%s' has no %s digest", dataFile.Name, algorithm.name)
		}
		w.start("ds:Reference", "Id", referenceID(signatureID, i), "URI", url.PathEscape(dataFile.Name))
		w.digest(algorithm, digest)
		w.end("ds:Reference")
	}
	w.start("ds:Reference", "Id", "r-"+signatureID+"-sp", "Type", signedPropertiesType, "URI", "#"+signedPropertiesID(signatureID))
	w.digest(algorithm, base64.StdEncoding.EncodeToString(algorithm.digest(signedProperties)))
	w.end("ds:Reference")
	w.end("ds:SignedInfo")
	return w.bytes(), nil
}

func buildSignatureDocument(dataToSign *session.DataToSign, signatureValue []byte, certificate *x509.Certificate) []byte {
	w := &documentWriter{}
	w.buf.WriteString(xml.Header)
	w.start("asic:XAdESSignatures", "xmlns:asic", asicNamespace, "xmlns:ds", dsNamespace, "xmlns:xades", xadesNamespace)
	w.start("ds:Signature", "Id", dataToSign.SignatureID)
	w.raw(dataToSign.Data)
	w.element("ds:SignatureValue", base64.StdEncoding.EncodeToString(signatureValue), "Id", dataToSign.SignatureID+"-SIG")
	w.start("ds:KeyInfo")
	w.start("ds:X509Data")
	w.element("ds:X509Certificate", base64.StdEncoding.EncodeToString(certificate.Raw))
	w.end("ds:X509Data")
	w.end("ds:KeyInfo")
	w.start("ds:Object")
	w.start("xades:QualifyingProperties", "Target", "#"+dataToSign.SignatureID)
	w.raw(dataToSign.State)
	w.end("xades:QualifyingProperties")
	w.end("ds:Object")
	w.end("ds:Signature")
	w.end("asic:XAdESSignatures")
	return w.bytes()
}
