package connectionhub

import (
	"testing"

	"github.com/stretchr/testify/require"
	wsmodels "request-flow-backend/models/ws"
)

func TestHubWithoutClients(t *testing.T) {
	Init()
	require.False(t, Instance.IsConnected("u1"))
	require.False(t, Instance.SendMessage(wsmodels.ServerMessage{ToUserID: "u1", Msg: "test"}))
	Instance.DeleteClient("u1", nil)
}

func TestSessionPush(t *testing.T) {
	sess := newSession(nil)
	require.True(t, sess.push("msg"))
	sess.stop()
	<-sess.ctx.Done()
	require.False(t, sess.push("msg"))
}
