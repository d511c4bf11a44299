package event

// Dispute claims that deposit Tx was erroneous; its funds move to held.
type Dispute struct {
	Tx     TxID // References a prior deposit
	Client ClientID
}

func (d *Dispute) TxID() TxID {
	return d.Tx
}

func (d *Dispute) ClientID() ClientID {
	return d.Client
}

func (d *Dispute) Type() TransactionType {
	return TransactionTypeDispute
}

// Resolve closes a dispute in the client's favour; held funds are released.
type Resolve struct {
	Tx     TxID // References a disputed deposit
	Client ClientID
}

func (r *Resolve) TxID() TxID {
	return r.Tx
}

func (r *Resolve) ClientID() ClientID {
	return r.Client
}

func (r *Resolve) Type() TransactionType {
	return TransactionTypeResolve
}

// Chargeback reverses a disputed deposit and freezes the account.
type Chargeback struct {
	Tx     TxID // References a disputed deposit
	Client ClientID
}

func (c *Chargeback) TxID() TxID {
	return c.Tx
}

func (c *Chargeback) ClientID() ClientID {
	return c.Client
}

func (c *Chargeback) Type() TransactionType {
	return TransactionTypeChargeback
}
