package services

import (
	"fmt"

	"github.com/CodeStar86/Bangin-Gear/models"
	"github.com/CodeStar86/Bangin-Gear/utils"
	"github.com/go-faster/errors"
	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
)

var (
	darkGray   = color.Color{Red: 20, Green: 20, Blue: 20}
	mediumGray = color.Color{Red: 121, Green: 119, Blue: 109}
	neonGreen  = color.Color{Red: 57, Green: 255, Blue: 20}
)

// RenderReceipt builds the PDF receipt of a confirmed order.
func RenderReceipt(conf models.OrderConfirmation) ([]byte, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 20, 20)

	// Title
	m.Row(15, func() {
		m.Col(8, func() {
			m.Text("BANGIN' GEAR", props.Text{Size: 22, Style: consts.Bold, Color: darkGray})
		})
		m.Col(4, func() {
			m.Text("RECEIPT", props.Text{Size: 16, Style: consts.Bold, Color: neonGreen, Align: consts.Right})
		})
	})

	m.Row(8, func() {})

	// Customer and order details
	name := conf.Contact.FirstName + " " + conf.Contact.LastName
	m.Row(5, func() {
		m.Col(6, func() {
			m.Text("SHIP TO", props.Text{Size: 8, Style: consts.Bold, Color: darkGray})
		})
		m.Col(6, func() {
			m.Text("ORDER DETAILS", props.Text{Size: 8, Style: consts.Bold, Color: darkGray, Align: consts.Right})
		})
	})
	detailRow(m, name, fmt.Sprintf("Order #%s", conf.OrderNumber))
	detailRow(m, conf.Address.Address1, fmt.Sprintf("Date: %s", conf.CreatedAt.Format("Jan 02, 2006")))
	detailRow(m, conf.Address.City+" "+conf.Address.Postcode, paymentLine(conf))
	detailRow(m, conf.Contact.Email, conf.Summary.ShippingMethod.Name)

	m.Row(8, func() {})

	// Items
	m.Row(6, func() {
		headerCol(m, 6, "Item", consts.Left)
		headerCol(m, 2, "Qty", consts.Right)
		headerCol(m, 2, "Price", consts.Right)
		headerCol(m, 2, "Total", consts.Right)
	})
	for _, item := range conf.Items {
		desc := item.Name
		if item.Size != "" || item.Color != "" {
			desc = fmt.Sprintf("%s (%s, %s)", item.Name, item.Size, item.Color)
		}
		m.Row(6, func() {
			bodyCol(m, 6, desc, consts.Left)
			bodyCol(m, 2, fmt.Sprintf("%d", item.Quantity), consts.Right)
			bodyCol(m, 2, utils.FormatMoney(item.Price), consts.Right)
			bodyCol(m, 2, utils.FormatMoney(item.LineTotal()), consts.Right)
		})
	}

	m.Row(8, func() {})

	// Summary
	s := conf.Summary
	summaryRow(m, "Subtotal", utils.FormatMoney(s.Subtotal))
	if s.Savings.IsPositive() {
		summaryRow(m, "You saved", utils.FormatMoney(s.Savings))
	}
	if s.Discount.IsPositive() && s.Coupon != nil {
		summaryRow(m, "Coupon "+s.Coupon.Code, "-"+utils.FormatMoney(s.Discount))
	}
	shipping := utils.FormatMoney(s.ShippingCost)
	if s.FreeShipping {
		shipping = "FREE"
	}
	summaryRow(m, "Shipping", shipping)

	m.Row(8, func() {
		m.Col(8, func() {})
		m.Col(2, func() {
			m.Text("Total", props.Text{Size: 12, Style: consts.Bold, Color: darkGray, Align: consts.Right})
		})
		m.Col(2, func() {
			m.Text(utils.FormatMoney(s.Total), props.Text{Size: 12, Style: consts.Bold, Color: darkGray, Align: consts.Right})
		})
	})

	m.Row(12, func() {})

	// Footer
	m.Row(5, func() {
		m.Col(12, func() {
			m.Text("Thanks for gearing up with us!", props.Text{Size: 8, Style: consts.Bold, Color: darkGray})
		})
	})

	buf, err := m.Output()
	if err != nil {
		return nil, errors.Wrap(err, "render receipt")
	}
	return buf.Bytes(), nil
}

func detailRow(m pdf.Maroto, left, right string) {
	m.Row(5, func() {
		m.Col(6, func() {
			m.Text(left, props.Text{Size: 9, Color: mediumGray})
		})
		m.Col(6, func() {
			m.Text(right, props.Text{Size: 9, Color: mediumGray, Align: consts.Right})
		})
	})
}

func headerCol(m pdf.Maroto, width uint, text string, align consts.Align) {
	m.Col(width, func() {
		m.Text(text, props.Text{Size: 8, Style: consts.Bold, Color: darkGray, Align: align})
	})
}

func bodyCol(m pdf.Maroto, width uint, text string, align consts.Align) {
	m.Col(width, func() {
		m.Text(text, props.Text{Size: 9, Color: darkGray, Align: align})
	})
}

func summaryRow(m pdf.Maroto, label, value string) {
	m.Row(5, func() {
		m.Col(8, func() {})
		m.Col(2, func() {
			m.Text(label, props.Text{Size: 9, Color: mediumGray, Align: consts.Right})
		})
		m.Col(2, func() {
			m.Text(value, props.Text{Size: 9, Color: darkGray, Align: consts.Right})
		})
	})
}

func paymentLine(conf models.OrderConfirmation) string {
	if conf.PaymentMethod == "card" && conf.PaymentLast4 != "" {
		return "Card ending " + conf.PaymentLast4
	}
	return "Paid with PayPal"
}
