package console_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/awscbba/registry-frontend-sub000/internal/console"
)

func TestBannerChannelsAreIndependent(t *testing.T) {
	b := console.NewBanner(time.Minute)

	b.SetSuccess("guardado")
	b.SetError("fallo de red")

	success, errMsg := b.Messages()
	require.Equal(t, "guardado", success)
	require.Equal(t, "fallo de red", errMsg)

	// Setting one channel never clears the other.
	b.SetSuccess("actualizado")
	success, errMsg = b.Messages()
	require.Equal(t, "actualizado", success)
	require.Equal(t, "fallo de red", errMsg)
}

func TestBannerOverwritesSameChannel(t *testing.T) {
	b := console.NewBanner(time.Minute)

	b.SetError("primero")
	b.SetError("segundo")

	_, errMsg := b.Messages()
	require.Equal(t, "segundo", errMsg)
}

func TestBannerSuccessAutoClears(t *testing.T) {
	b := console.NewBanner(20 * time.Millisecond)

	b.SetSuccess("guardado")
	b.SetError("persistente")

	require.Eventually(t, func() bool {
		success, _ := b.Messages()
		return success == ""
	}, time.Second, 5*time.Millisecond)

	_, errMsg := b.Messages()
	require.Equal(t, "persistente", errMsg, "errors persist until dismissed")
}

func TestBannerNewerSuccessSurvivesOlderTimer(t *testing.T) {
	b := console.NewBanner(30 * time.Millisecond)

	b.SetSuccess("viejo")
	time.Sleep(20 * time.Millisecond)
	b.SetSuccess("nuevo")
	time.Sleep(20 * time.Millisecond)

	// The first timer has fired by now but must not clear the newer message.
	success, _ := b.Messages()
	require.Equal(t, "nuevo", success)
}

func TestBannerClear(t *testing.T) {
	b := console.NewBanner(time.Minute)
	b.SetSuccess("ok")
	b.SetError("mal")

	b.Clear()
	success, errMsg := b.Messages()
	require.Empty(t, success)
	require.Empty(t, errMsg)
}
