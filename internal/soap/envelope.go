// Package soap implements the SOAP 1.1 transport used by the SAP Host Agent
// control interface.
package soap

import (
	"encoding/xml"
	"fmt"
)

const (
	envelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"

	// Namespace of the SAPHostControl web service.
	ServiceNS = "urn:SAPHostControl"
)

// requestEnvelope wraps an operation payload for transmission.
type requestEnvelope struct {
	XMLName xml.Name    `xml:"SOAP-ENV:Envelope"`
	EnvNS   string      `xml:"xmlns:SOAP-ENV,attr"`
	SvcNS   string      `xml:"xmlns:ns1,attr"`
	Body    requestBody `xml:"SOAP-ENV:Body"`
}

type requestBody struct {
	Payload interface{}
}

// responseEnvelope captures a response body for two-pass decoding: the fault
// is checked first, then the raw body is unmarshalled into the caller's
// response type.
type responseEnvelope struct {
	XMLName xml.Name     `xml:"Envelope"`
	Body    responseBody `xml:"Body"`
}

type responseBody struct {
	Fault *Fault `xml:"Fault"`
	Inner []byte `xml:",innerxml"`
}

// Fault is a SOAP fault returned by the host agent.
type Fault struct {
	Code   string `xml:"faultcode"`
	Reason string `xml:"faultstring"`
	Detail string `xml:"detail"`
}

func (f *Fault) Error() string {
	if f.Detail != "" {
		return fmt.Sprintf("soap fault %s: %s (%s)", f.Code, f.Reason, f.Detail)
	}
	return fmt.Sprintf("soap fault %s: %s", f.Code, f.Reason)
}

// marshalEnvelope renders a complete request document for the payload.
func marshalEnvelope(payload interface{}) ([]byte, error) {
	env := requestEnvelope{
		EnvNS: envelopeNS,
		SvcNS: ServiceNS,
		Body:  requestBody{Payload: payload},
	}
	out, err := xml.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal soap envelope: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}
