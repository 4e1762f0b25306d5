// Package console is the root of domain interfaces backed by the global database.
package console

import (
	"context"

	kpool "github.com/kubeconsole/console/pkg/conn/db/postgres/pool"
	kdbaccount "github.com/kubeconsole/console/pkg/domain/account/db"
	kpgaccount "github.com/kubeconsole/console/pkg/domain/account/db/postgres"
	kdbinvoice "github.com/kubeconsole/console/pkg/domain/invoice/db"
	kpginvoice "github.com/kubeconsole/console/pkg/domain/invoice/db/postgres"
	kdbrealname "github.com/kubeconsole/console/pkg/domain/realname/db"
	kpgrealname "github.com/kubeconsole/console/pkg/domain/realname/db/postgres"
	kdbtoken "github.com/kubeconsole/console/pkg/domain/token/db"
	kpgtoken "github.com/kubeconsole/console/pkg/domain/token/db/postgres"
	kdbuser "github.com/kubeconsole/console/pkg/domain/user/db"
	kpguser "github.com/kubeconsole/console/pkg/domain/user/db/postgres"
	xe "github.com/kubeconsole/console/pkg/errors"
)

type Console interface {
	Users() kdbuser.UserInterface
	Accounts() kdbaccount.AccountInterface
	Tokens() kdbtoken.TokenInterface
	RealNames() kdbrealname.RealNameInterface
	Invoices() kdbinvoice.InvoiceInterface

	// release the connection pool. No-op for assembled ones.
	Close()
}

type console struct {
	close func()

	users     kdbuser.UserInterface
	accounts  kdbaccount.AccountInterface
	tokens    kdbtoken.TokenInterface
	realnames kdbrealname.RealNameInterface
	invoices  kdbinvoice.InvoiceInterface
}

// Connect to the global database.
func New(ctx context.Context, url string) (Console, error) {
	pool, err := kpool.Connect(ctx, url, kpool.WithApplicationName("consoled"))
	if err != nil {
		return nil, xe.Wrap(err)
	}
	return FromPool(pool), nil
}

func FromPool(pool kpool.Pool) Console {
	return &console{
		close:     pool.Close,
		users:     kpguser.New(pool),
		accounts:  kpgaccount.New(pool),
		tokens:    kpgtoken.New(pool),
		realnames: kpgrealname.New(pool),
		invoices:  kpginvoice.New(pool),
	}
}

type Parts struct {
	Users     kdbuser.UserInterface
	Accounts  kdbaccount.AccountInterface
	Tokens    kdbtoken.TokenInterface
	RealNames kdbrealname.RealNameInterface
	Invoices  kdbinvoice.InvoiceInterface
}

// Assemble Console from parts, mainly for tests.
func Assemble(p Parts) Console {
	return &console{
		close:     func() {},
		users:     p.Users,
		accounts:  p.Accounts,
		tokens:    p.Tokens,
		realnames: p.RealNames,
		invoices:  p.Invoices,
	}
}

func (c *console) Users() kdbuser.UserInterface             { return c.users }
func (c *console) Accounts() kdbaccount.AccountInterface    { return c.accounts }
func (c *console) Tokens() kdbtoken.TokenInterface          { return c.tokens }
func (c *console) RealNames() kdbrealname.RealNameInterface { return c.realnames }
func (c *console) Invoices() kdbinvoice.InvoiceInterface    { return c.invoices }
func (c *console) Close()                                   { c.close() }
