package eventbus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisabledBus(t *testing.T) {
	err := Connect("", "request-flow")
	require.NoError(t, err)
	require.NoError(t, Instance.Publish("request.approve", map[string]string{"id": "1"}))
	Instance.Close()
}

func TestFullSubject(t *testing.T) {
	require.Equal(t, "request-flow.request.approve", (&impl{prefix: "request-flow"}).FullSubject("request.approve"))
	require.Equal(t, "request.approve", (&impl{}).FullSubject("request.approve"))
}
