package catalog

import "orangepass/internal/cli/model"

// builtinEntries — встроенный справочник. Код банка совпадает с ключом
// в каталоге VietQR, BIN — с NAPAS.
var builtinEntries = []Entry{
	{Code: "ABB", Name: "Ngân hàng TMCP An Bình", ShortName: "ABBANK", Type: model.TypeBank, BIN: "970425"},
	{Code: "ACB", Name: "Ngân hàng TMCP Á Châu", ShortName: "ACB", Type: model.TypeBank, BIN: "970416"},
	{Code: "AGRIBANK", Name: "Ngân hàng Nông nghiệp và Phát triển Nông thôn Việt Nam", ShortName: "Agribank", Type: model.TypeBank, BIN: "970405"},
	{Code: "BIDV", Name: "Ngân hàng TMCP Đầu tư và Phát triển Việt Nam", ShortName: "BIDV", Type: model.TypeBank, BIN: "970418"},
	{Code: "EIB", Name: "Ngân hàng TMCP Xuất Nhập khẩu Việt Nam", ShortName: "Eximbank", Type: model.TypeBank, BIN: "970431"},
	{Code: "HDB", Name: "Ngân hàng TMCP Phát triển TP.HCM", ShortName: "HDBank", Type: model.TypeBank, BIN: "970437"},
	{Code: "ICB", Name: "Ngân hàng TMCP Công thương Việt Nam", ShortName: "VietinBank", Type: model.TypeBank, BIN: "970415"},
	{Code: "LPB", Name: "Ngân hàng TMCP Lộc Phát Việt Nam", ShortName: "LPBank", Type: model.TypeBank, BIN: "970449"},
	{Code: "MB", Name: "Ngân hàng TMCP Quân đội", ShortName: "MBBank", Type: model.TypeBank, BIN: "970422"},
	{Code: "MSB", Name: "Ngân hàng TMCP Hàng Hải", ShortName: "MSB", Type: model.TypeBank, BIN: "970426"},
	{Code: "NAB", Name: "Ngân hàng TMCP Nam Á", ShortName: "NamABank", Type: model.TypeBank, BIN: "970428"},
	{Code: "OCB", Name: "Ngân hàng TMCP Phương Đông", ShortName: "OCB", Type: model.TypeBank, BIN: "970448"},
	{Code: "SCB", Name: "Ngân hàng TMCP Sài Gòn", ShortName: "SCB", Type: model.TypeBank, BIN: "970429"},
	{Code: "SHB", Name: "Ngân hàng TMCP Sài Gòn - Hà Nội", ShortName: "SHB", Type: model.TypeBank, BIN: "970443"},
	{Code: "STB", Name: "Ngân hàng TMCP Sài Gòn Thương Tín", ShortName: "Sacombank", Type: model.TypeBank, BIN: "970403"},
	{Code: "TCB", Name: "Ngân hàng TMCP Kỹ thương Việt Nam", ShortName: "Techcombank", Type: model.TypeBank, BIN: "970407"},
	{Code: "TPB", Name: "Ngân hàng TMCP Tiên Phong", ShortName: "TPBank", Type: model.TypeBank, BIN: "970423"},
	{Code: "VBA", Name: "Ngân hàng TMCP Việt Á", ShortName: "VietABank", Type: model.TypeBank, BIN: "970427"},
	{Code: "VCB", Name: "Ngân hàng TMCP Ngoại Thương Việt Nam", ShortName: "Vietcombank", Type: model.TypeBank, BIN: "970436"},
	{Code: "VIB", Name: "Ngân hàng TMCP Quốc tế Việt Nam", ShortName: "VIB", Type: model.TypeBank, BIN: "970441"},
	{Code: "VPB", Name: "Ngân hàng TMCP Việt Nam Thịnh Vượng", ShortName: "VPBank", Type: model.TypeBank, BIN: "970432"},

	{Code: "MOMO", Name: "Ví điện tử MoMo", ShortName: "MoMo", Type: model.TypeEwallet},
	{Code: "SHOPEEPAY", Name: "Ví điện tử ShopeePay", ShortName: "ShopeePay", Type: model.TypeEwallet},
	{Code: "VIETTELMONEY", Name: "Viettel Money", ShortName: "Viettel Money", Type: model.TypeEwallet},
	{Code: "VNPAY", Name: "Ví điện tử VNPAY", ShortName: "VNPAY", Type: model.TypeEwallet},
	{Code: "ZALOPAY", Name: "Ví điện tử ZaloPay", ShortName: "ZaloPay", Type: model.TypeEwallet},

	{Code: "BHX", Name: "Bách Hoá Xanh", ShortName: "Bách Hoá Xanh", Type: model.TypeStore},
	{Code: "CIRCLEK", Name: "Circle K Việt Nam", ShortName: "Circle K", Type: model.TypeStore},
	{Code: "COOPMART", Name: "Liên hiệp HTX Thương mại TP.HCM", ShortName: "Co.opmart", Type: model.TypeStore},
	{Code: "GS25", Name: "GS25 Việt Nam", ShortName: "GS25", Type: model.TypeStore},
	{Code: "HIGHLANDS", Name: "Highlands Coffee", ShortName: "Highlands", Type: model.TypeStore},
	{Code: "PHUCLONG", Name: "Phúc Long Coffee & Tea", ShortName: "Phúc Long", Type: model.TypeStore},
	{Code: "THEGIOIDIDONG", Name: "Thế Giới Di Động", ShortName: "TGDĐ", Type: model.TypeStore},
	{Code: "VINMART", Name: "WinMart", ShortName: "WinMart", Type: model.TypeStore},
}
