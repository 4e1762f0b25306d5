package handlers

import (
	"errors"
	"strings"

	apiaccounts "github.com/kubeconsole/console/pkg/api/types/accounts"
	apierr "github.com/kubeconsole/console/pkg/api/types/errors"
	"github.com/kubeconsole/console/pkg/api/types/response"
	"github.com/kubeconsole/console/pkg/billing"
	"github.com/kubeconsole/console/pkg/domain"
	kdbaccount "github.com/kubeconsole/console/pkg/domain/account/db"
	domerr "github.com/kubeconsole/console/pkg/domain/errors"
	kdbuser "github.com/kubeconsole/console/pkg/domain/user/db"
	"github.com/labstack/echo/v4"
)

func composeBalance(a domain.Account) apiaccounts.Balance {
	return apiaccounts.Balance{
		Balance:          a.Balance,
		DeductionBalance: a.DeductionBalance,
		Available:        a.Available(),
	}
}

// BalanceHandler responds balance of the session user.
//
// With "allRegions=true" query, it also asks account services of every region.
// When client is nil, "allRegions" is not supported.
func BalanceHandler(
	accounts kdbaccount.AccountInterface,
	users kdbuser.UserInterface,
	client *billing.Client,
	endpoints billing.Endpoints,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, uid, err := userOf(c)
		if err != nil {
			return err
		}
		ctx := c.Request().Context()

		account, err := accounts.Get(ctx, uid)
		if errors.Is(err, domerr.ErrMissing) {
			return apierr.NotFound(apierr.WithError(err))
		} else if err != nil {
			return apierr.InternalServerError(err)
		}
		resp := apiaccounts.Balances{Local: composeBalance(account)}

		if c.QueryParam("allRegions") != "true" {
			return response.Ok(c, resp)
		}
		if client == nil {
			return apierr.ServiceUnavailable("billing service is not configured", nil)
		}

		regions, err := users.Regions(ctx)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		token := strings.TrimPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
		balances, err := client.CheckAllRegions(ctx, regions, endpoints, claims.RegionUid, token)
		if err != nil {
			return apierr.ServiceUnavailable("some region does not answer. retry later", err)
		}
		for _, b := range balances {
			resp.Regions = append(resp.Regions, apiaccounts.RegionBalance{
				Region:  b.Region.DisplayName,
				Balance: composeBalance(b.Account),
			})
		}
		return response.Ok(c, resp)
	}
}
