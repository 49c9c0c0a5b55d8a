package soap

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingPayload struct {
	XMLName xml.Name `xml:"ns1:Ping"`
	Value   string   `xml:"value"`
}

func TestMarshalEnvelope(t *testing.T) {
	t.Parallel()

	doc, err := marshalEnvelope(pingPayload{Value: "hello"})
	require.NoError(t, err)

	out := string(doc)
	assert.True(t, strings.HasPrefix(out, xml.Header))
	assert.Contains(t, out, `xmlns:SOAP-ENV="http://schemas.xmlsoap.org/soap/envelope/"`)
	assert.Contains(t, out, `xmlns:ns1="urn:SAPHostControl"`)
	assert.Contains(t, out, "<SOAP-ENV:Body><ns1:Ping><value>hello</value></ns1:Ping></SOAP-ENV:Body>")
}

func TestResponseEnvelope_Fault(t *testing.T) {
	t.Parallel()

	raw := `<SOAP-ENV:Envelope xmlns:SOAP-ENV="http://schemas.xmlsoap.org/soap/envelope/">
	<SOAP-ENV:Body>
	<SOAP-ENV:Fault>
	<faultcode>SOAP-ENV:Client</faultcode>
	<faultstring>Invalid Credentials</faultstring>
	</SOAP-ENV:Fault>
	</SOAP-ENV:Body>
	</SOAP-ENV:Envelope>`

	var env responseEnvelope
	require.NoError(t, xml.Unmarshal([]byte(raw), &env))
	require.NotNil(t, env.Body.Fault)
	assert.Contains(t, env.Body.Fault.Error(), "Invalid Credentials")
	assert.Contains(t, env.Body.Fault.Error(), "SOAP-ENV:Client")
}

func TestResponseEnvelope_InnerBody(t *testing.T) {
	t.Parallel()

	raw := `<Envelope><Body><PingResponse><value>pong</value></PingResponse></Body></Envelope>`

	var env responseEnvelope
	require.NoError(t, xml.Unmarshal([]byte(raw), &env))
	require.Nil(t, env.Body.Fault)

	var resp struct {
		XMLName xml.Name `xml:"PingResponse"`
		Value   string   `xml:"value"`
	}
	require.NoError(t, xml.Unmarshal(env.Body.Inner, &resp))
	assert.Equal(t, "pong", resp.Value)
}
